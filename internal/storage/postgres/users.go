package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	rec := newUserRecord(u)
	err := s.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrUserExists
	}

	return errors.Wrap(err, "create user")
}

func (s *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrUserNotFound
	}

	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, errors.Wrap(notFound(err, model.ErrUserNotFound), "get user")
	}

	return rec.model(), nil
}

func (s *UserStore) FindByLogin(ctx context.Context, emailOrPhone string) (*model.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).
		Where("email = ? OR phone = ?", emailOrPhone, emailOrPhone).
		First(&rec).Error
	if err != nil {
		return nil, errors.Wrap(notFound(err, model.ErrUserNotFound), "find user")
	}

	return rec.model(), nil
}

// Update locks the user row while fn runs.
func (s *UserStore) Update(ctx context.Context, id string, fn func(u *model.User) error) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrUserNotFound
	}

	var out *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return notFound(err, model.ErrUserNotFound)
		}

		next := rec.model()
		if err := fn(next); err != nil {
			return err
		}
		next.ID = rec.ID
		next.CreatedAt = rec.CreatedAt

		updated := newUserRecord(next)
		if err := tx.Save(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return model.ErrUserExists
			}

			return errors.Wrap(err, "save user")
		}
		out = next

		return nil
	})

	return out, err
}
