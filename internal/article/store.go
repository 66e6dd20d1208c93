package article

import (
	"context"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

// Store persists articles. Reads return the article with its author
// populated; missing ids yield model.ErrArticleNotFound.
type Store interface {
	// Create assigns the id when a has none.
	Create(ctx context.Context, a *model.Article) error
	Get(ctx context.Context, id string) (model.ArticleWithAuthorExpanded, error)
	// Update runs fn on a copy of the stored article and saves the result.
	// Updates of one article are serialised; when fn fails nothing is saved.
	// Id, author and creation time are kept whatever fn does.
	Update(ctx context.Context, id string, fn func(a *model.Article) error) (model.ArticleWithAuthorExpanded, error)
	Delete(ctx context.Context, id string) error
	// List returns the articles filed under one of categories, or every
	// article when categories is empty.
	List(ctx context.Context, categories []string) ([]model.ArticleWithAuthorExpanded, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.ArticleWithAuthorExpanded, error)
}
