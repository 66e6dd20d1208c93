package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

type ArticleStore struct {
	db *gorm.DB
}

func (s *ArticleStore) Create(ctx context.Context, a *model.Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	rec := newArticleRecord(a)

	return errors.Wrap(s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error, "create article")
}

func (s *ArticleStore) Get(ctx context.Context, id string) (model.ArticleWithAuthorExpanded, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.ArticleWithAuthorExpanded{}, model.ErrArticleNotFound
	}

	var rec articleRecord
	if err := s.db.WithContext(ctx).Preload("Author").First(&rec, "id = ?", id).Error; err != nil {
		return model.ArticleWithAuthorExpanded{}, errors.Wrap(notFound(err, model.ErrArticleNotFound), "get article")
	}

	return rec.expanded(), nil
}

// Update holds a row lock on the article while fn runs. Id, author and
// creation time cannot be changed by fn.
func (s *ArticleStore) Update(ctx context.Context, id string, fn func(a *model.Article) error) (model.ArticleWithAuthorExpanded, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.ArticleWithAuthorExpanded{}, model.ErrArticleNotFound
	}

	var out model.ArticleWithAuthorExpanded
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec articleRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return notFound(err, model.ErrArticleNotFound)
		}

		current := rec.model()
		next := current.Clone()
		if err := fn(next); err != nil {
			return err
		}
		next.ID = current.ID
		next.AuthorID = current.AuthorID
		next.CreatedAt = current.CreatedAt

		updated := newArticleRecord(next)
		if err := tx.Omit(clause.Associations).Save(&updated).Error; err != nil {
			return errors.Wrap(err, "save article")
		}

		if err := tx.First(&updated.Author, "id = ?", next.AuthorID).Error; err != nil {
			return errors.Wrap(err, "load author")
		}
		out = updated.expanded()

		return nil
	})

	return out, err
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrArticleNotFound
	}

	res := s.db.WithContext(ctx).Delete(&articleRecord{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete article")
	}
	if res.RowsAffected == 0 {
		return model.ErrArticleNotFound
	}

	return nil
}

// List filters by category in the query; an empty list means no filter.
func (s *ArticleStore) List(ctx context.Context, categories []string) ([]model.ArticleWithAuthorExpanded, error) {
	q := s.db.WithContext(ctx).Preload("Author").Order("created_at DESC")
	if len(categories) > 0 {
		q = q.Where("category IN ?", categories)
	}

	return s.find(q)
}

func (s *ArticleStore) ListByAuthor(ctx context.Context, authorID string) ([]model.ArticleWithAuthorExpanded, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return []model.ArticleWithAuthorExpanded{}, nil
	}

	return s.find(s.db.WithContext(ctx).Preload("Author").Where("author_id = ?", authorID).Order("created_at DESC"))
}

func (s *ArticleStore) find(q *gorm.DB) ([]model.ArticleWithAuthorExpanded, error) {
	var recs []articleRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "list articles")
	}

	out := make([]model.ArticleWithAuthorExpanded, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.expanded())
	}

	return out, nil
}
