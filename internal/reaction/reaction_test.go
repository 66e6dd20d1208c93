package reaction

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
)

func newArticle(likes, dislikes, blocks []string) *model.Article {
	return &model.Article{
		ID:        "a1",
		AuthorID:  "author",
		Title:     "Hello",
		Category:  model.CategorySpace,
		Likes:     model.NewUserSet(likes...),
		Dislikes:  model.NewUserSet(dislikes...),
		Blocks:    model.NewUserSet(blocks...),
		CreatedAt: t0,
		UpdatedAt: t0,
	}
}

func mustApply(t *testing.T, a *model.Article, user string, action Action) *model.Article {
	t.Helper()

	out, err := Apply(a, user, action, t1)
	require.NoError(t, err)

	return out
}

func TestLikeTogglesOnAndOff(t *testing.T) {
	a := newArticle(nil, nil, nil)

	liked := mustApply(t, a, "u1", Like)
	assert.True(t, liked.Likes.Has("u1"))
	assert.Equal(t, t1, liked.UpdatedAt)

	unliked := mustApply(t, liked, "u1", Like)
	assert.False(t, unliked.Likes.Has("u1"))
}

func TestDoubleReactionRestoresSets(t *testing.T) {
	for _, action := range []Action{Like, Dislike, Block} {
		t.Run(string(action), func(t *testing.T) {
			a := newArticle([]string{"u2"}, []string{"u3"}, []string{"u4"})

			twice := mustApply(t, mustApply(t, a, "u1", action), "u1", action)

			assert.Equal(t, a.Likes, twice.Likes)
			assert.Equal(t, a.Dislikes, twice.Dislikes)
			assert.Equal(t, a.Blocks, twice.Blocks)
		})
	}
}

func TestLikeScrubsDislike(t *testing.T) {
	a := newArticle(nil, []string{"u1"}, nil)

	out := mustApply(t, a, "u1", Like)

	assert.True(t, out.Likes.Has("u1"))
	assert.False(t, out.Dislikes.Has("u1"))
}

func TestDislikeScrubsLike(t *testing.T) {
	a := newArticle([]string{"u1"}, nil, nil)

	out := mustApply(t, a, "u1", Dislike)

	assert.True(t, out.Dislikes.Has("u1"))
	assert.False(t, out.Likes.Has("u1"))
}

func TestBlockLeavesLikesAndDislikesAlone(t *testing.T) {
	a := newArticle([]string{"u1"}, []string{"u2"}, nil)

	blocked := mustApply(t, a, "u1", Block)
	assert.True(t, blocked.Blocks.Has("u1"))
	assert.Equal(t, a.Likes, blocked.Likes)
	assert.Equal(t, a.Dislikes, blocked.Dislikes)

	unblocked := mustApply(t, blocked, "u1", Block)
	assert.False(t, unblocked.Blocks.Has("u1"))
	assert.Equal(t, a.Likes, unblocked.Likes)
	assert.Equal(t, a.Dislikes, unblocked.Dislikes)
}

func TestSwitchingScenario(t *testing.T) {
	a := newArticle([]string{"u1", "u2"}, nil, nil)

	step1 := mustApply(t, a, "u3", Dislike)
	assert.Equal(t, model.NewUserSet("u1", "u2"), step1.Likes)
	assert.Equal(t, model.NewUserSet("u3"), step1.Dislikes)

	step2 := mustApply(t, step1, "u1", Dislike)
	assert.Equal(t, model.NewUserSet("u2"), step2.Likes)
	assert.Equal(t, model.NewUserSet("u1", "u3"), step2.Dislikes)
}

func TestLikesAndDislikesNeverOverlap(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	users := []string{"u1", "u2", "u3", "u4"}
	actions := []Action{Like, Dislike, Block}

	a := newArticle(nil, nil, nil)
	for i := 0; i < 500; i++ {
		a = mustApply(t, a, users[rnd.Intn(len(users))], actions[rnd.Intn(len(actions))])

		for id := range a.Likes {
			require.False(t, a.Dislikes.Has(id), "user %s in both likes and dislikes after step %d", id, i)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	a := newArticle([]string{"u1"}, nil, nil)

	_ = mustApply(t, a, "u1", Dislike)

	assert.True(t, a.Likes.Has("u1"))
	assert.Equal(t, 0, a.Dislikes.Len())
	assert.Equal(t, t0, a.UpdatedAt)
}

func TestAuthorMayReactToOwnArticle(t *testing.T) {
	a := newArticle(nil, nil, nil)

	out := mustApply(t, a, a.AuthorID, Like)

	assert.True(t, out.Likes.Has(a.AuthorID))
}

func TestApplyErrors(t *testing.T) {
	_, err := Apply(nil, "u1", Like, t1)
	assert.ErrorIs(t, err, model.ErrArticleNotFound)

	_, err = Apply(newArticle(nil, nil, nil), "", Like, t1)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = Apply(newArticle(nil, nil, nil), "u1", Action("love"), t1)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("dislike")
	require.NoError(t, err)
	assert.Equal(t, Dislike, a)

	for _, raw := range []string{"", "Like", "LIKE", "unlike"} {
		_, err := ParseAction(raw)
		assert.ErrorIs(t, err, ErrInvalidAction, raw)
	}
}
