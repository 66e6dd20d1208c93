package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSetToggle(t *testing.T) {
	s := NewUserSet()

	assert.True(t, s.Toggle("u1"))
	assert.True(t, s.Has("u1"))
	assert.False(t, s.Toggle("u1"))
	assert.False(t, s.Has("u1"))
	assert.Equal(t, 0, s.Len())
}

func TestUserSetDuplicatesCollapse(t *testing.T) {
	s := NewUserSet("u1", "u1", "u2")

	assert.Equal(t, 2, s.Len())
}

func TestUserSetJSONIsSortedArray(t *testing.T) {
	data, err := json.Marshal(NewUserSet("c", "a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b","c"]`, string(data))

	var nilSet UserSet
	data, err = json.Marshal(nilSet)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var decoded UserSet
	require.NoError(t, json.Unmarshal([]byte(`["x","y","x"]`), &decoded))
	assert.Equal(t, NewUserSet("x", "y"), decoded)
}

func TestArticleCloneIsDeep(t *testing.T) {
	a := &Article{
		ID:    "a1",
		Tags:  []string{"go"},
		Likes: NewUserSet("u1"),
	}

	c := a.Clone()
	c.Likes.Add("u2")
	c.Tags[0] = "rust"
	c.Blocks.Add("u3")

	assert.Equal(t, 1, a.Likes.Len())
	assert.Equal(t, "go", a.Tags[0])
	assert.Nil(t, a.Blocks)
}

func TestExpandUsesArticleAuthorID(t *testing.T) {
	a := &Article{ID: "a1", AuthorID: "u1"}

	e := a.Expand(Author{ID: "other", FirstName: "Peter", Email: "p@example.com"})

	assert.Equal(t, "u1", e.Author.ID)
	assert.Equal(t, "Peter", e.Author.FirstName)
}

func TestNormalizePreferences(t *testing.T) {
	assert.Equal(t, []string{"space", "health"}, NormalizePreferences([]string{"space", "", "health", "space"}))
	assert.Equal(t, []string{}, NormalizePreferences(nil))
}
