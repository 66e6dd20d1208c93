// Package reaction toggles a user's like, dislike or block on an article.
//
// Like and dislike are mutually exclusive: reacting with one always scrubs
// the user from the other in the same update. Block is independent of both.
// Reacting twice with the same action cancels the first reaction.
package reaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

type Action string

const (
	Like    Action = "like"
	Dislike Action = "dislike"
	Block   Action = "block"
)

var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrUnauthenticated = errors.New("acting user required")
)

func (a Action) Valid() bool {
	switch a {
	case Like, Dislike, Block:
		return true
	}

	return false
}

// ParseAction validates a raw action coming from a request body.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}

	return a, nil
}

// Apply returns a copy of article with userID's reaction toggled and
// UpdatedAt set to now. The input article is never modified.
func Apply(article *model.Article, userID string, action Action, now time.Time) (*model.Article, error) {
	if article == nil {
		return nil, model.ErrArticleNotFound
	}
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if !action.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	out := article.Clone()

	switch action {
	case Like:
		out.Likes.Toggle(userID)
		out.Dislikes.Remove(userID)
	case Dislike:
		out.Dislikes.Toggle(userID)
		out.Likes.Remove(userID)
	case Block:
		out.Blocks.Toggle(userID)
	}

	out.UpdatedAt = now

	return out, nil
}
