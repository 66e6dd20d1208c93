package articlerequest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/reaction"
)

func strp(s string) *string { return &s }

func TestArticleRequestBind(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)

	ok := &ArticleRequest{
		Title:       "  Mars  ",
		Description: "d",
		Content:     "c",
		Category:    model.CategorySpace,
		Tags:        []string{" red ", "", "planet"},
	}
	require.NoError(t, ok.Bind(req))
	assert.Equal(t, "Mars", ok.Title)
	assert.Equal(t, []string{"red", "planet"}, ok.Tags)

	short := &ArticleRequest{Title: " ab ", Description: "d", Content: "c", Category: model.CategorySpace}
	assert.Error(t, short.Bind(req))

	unknown := &ArticleRequest{Title: "abc", Description: "d", Content: "c", Category: "astrology"}
	assert.Error(t, unknown.Bind(req))

	missing := &ArticleRequest{Title: "abc", Category: model.CategorySpace}
	assert.Error(t, missing.Bind(req))
}

func TestArticleRequestBuildsEmptyReactionSets(t *testing.T) {
	now := time.Now()
	r := &ArticleRequest{Title: "abc", Description: "d", Content: "c", Category: model.CategoryHealth}

	a := r.Article("u1", now)

	assert.Equal(t, "u1", a.AuthorID)
	assert.Equal(t, 0, a.Likes.Len())
	assert.NotNil(t, a.Dislikes)
	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestArticleUpdateRequest(t *testing.T) {
	req := httptest.NewRequest("PUT", "/", nil)

	assert.ErrorIs(t, (&ArticleUpdateRequest{}).Bind(req), ErrNoUpdateFields)
	assert.Error(t, (&ArticleUpdateRequest{Title: strp("no")}).Bind(req))
	assert.Error(t, (&ArticleUpdateRequest{Category: strp("Space")}).Bind(req))

	u := &ArticleUpdateRequest{Title: strp(" New title "), Category: strp(model.CategorySports)}
	require.NoError(t, u.Bind(req))

	a := &model.Article{Title: "Old", Description: "keep", Category: model.CategorySpace}
	now := time.Now()
	u.Apply(a, now)

	assert.Equal(t, "New title", a.Title)
	assert.Equal(t, "keep", a.Description)
	assert.Equal(t, model.CategorySports, a.Category)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestReactionRequestBind(t *testing.T) {
	req := httptest.NewRequest("PUT", "/", nil)

	rr := &ReactionRequest{Action: "block"}
	require.NoError(t, rr.Bind(req))
	assert.Equal(t, reaction.Block, rr.Parsed())

	assert.ErrorIs(t, (&ReactionRequest{Action: "love"}).Bind(req), reaction.ErrInvalidAction)
}

func TestPreferencesRequestKeepsValuesVerbatim(t *testing.T) {
	p := &PreferencesRequest{Preferences: []string{"space", "Space", "", "space", "astrology"}}

	require.NoError(t, p.Bind(httptest.NewRequest("PUT", "/", nil)))
	assert.Equal(t, []string{"space", "Space", "astrology"}, p.Preferences)
}
