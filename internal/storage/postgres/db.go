// Package postgres stores users and articles in PostgreSQL through gorm.
//
// Reaction and content updates lock the article row (SELECT ... FOR UPDATE)
// for the duration of the read-modify-write, so concurrent updates of one
// article are applied one after another.
package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the schema.
func Open(ctx context.Context, dsn string) (*DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	db := &DB{db: gormDB}
	if err := db.Migrate(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) Migrate(ctx context.Context) error {
	return errors.Wrap(
		db.db.WithContext(ctx).AutoMigrate(&userRecord{}, &articleRecord{}),
		"migrate schema",
	)
}

func (db *DB) Users() *UserStore {
	return &UserStore{db: db.db}
}

func (db *DB) Articles() *ArticleStore {
	return &ArticleStore{db: db.db}
}

func (db *DB) Close() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// notFound maps gorm's missing-row error onto the domain error.
func notFound(err, domain error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain
	}

	return err
}
