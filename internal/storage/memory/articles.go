package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

// ArticleStore keeps articles in insertion order and populates authors
// from the given UserStore.
type ArticleStore struct {
	mu       sync.RWMutex
	articles []*model.Article
	users    *UserStore
}

func NewArticleStore(users *UserStore) *ArticleStore {
	return &ArticleStore{users: users}
}

// Create assigns an id when a has none.
func (s *ArticleStore) Create(_ context.Context, a *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.articles = append(s.articles, a.Clone())

	return nil
}

func (s *ArticleStore) Get(_ context.Context, id string) (model.ArticleWithAuthorExpanded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return model.ArticleWithAuthorExpanded{}, model.ErrArticleNotFound
	}

	return s.expand(s.articles[i]), nil
}

// Update runs fn on a copy of the article while holding the write lock, so
// concurrent updates of the same article never interleave. Id, author and
// creation time cannot be changed by fn.
func (s *ArticleStore) Update(_ context.Context, id string, fn func(a *model.Article) error) (model.ArticleWithAuthorExpanded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.ArticleWithAuthorExpanded{}, model.ErrArticleNotFound
	}

	current := s.articles[i]
	next := current.Clone()
	if err := fn(next); err != nil {
		return model.ArticleWithAuthorExpanded{}, err
	}
	next.ID = current.ID
	next.AuthorID = current.AuthorID
	next.CreatedAt = current.CreatedAt
	s.articles[i] = next

	return s.expand(next), nil
}

func (s *ArticleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.ErrArticleNotFound
	}
	s.articles = append(s.articles[:i], s.articles[i+1:]...)

	return nil
}

// List returns the articles in one of categories, or all of them when
// categories is empty.
func (s *ArticleStore) List(_ context.Context, categories []string) ([]model.ArticleWithAuthorExpanded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	out := []model.ArticleWithAuthorExpanded{}
	for _, a := range s.articles {
		if len(wanted) == 0 || wanted[a.Category] {
			out = append(out, s.expand(a))
		}
	}

	return out, nil
}

func (s *ArticleStore) ListByAuthor(_ context.Context, authorID string) ([]model.ArticleWithAuthorExpanded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.ArticleWithAuthorExpanded{}
	for _, a := range s.articles {
		if a.AuthorID == authorID {
			out = append(out, s.expand(a))
		}
	}

	return out, nil
}

func (s *ArticleStore) index(id string) int {
	for i, a := range s.articles {
		if a.ID == id {
			return i
		}
	}

	return -1
}

func (s *ArticleStore) expand(a *model.Article) model.ArticleWithAuthorExpanded {
	var author model.Author
	if s.users != nil {
		author = s.users.author(a.AuthorID)
	}

	return a.Clone().Expand(author)
}
