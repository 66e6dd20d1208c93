package articlerequest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
	"github.com/SergeyParamoshkin/articlefeed/internal/reaction"
	"github.com/SergeyParamoshkin/articlefeed/internal/validate"
)

var ErrNoUpdateFields = errors.New("no update fields provided")

// ArticleRequest is the request payload for creating an Article. Id,
// author and reaction sets are never taken from the client.
type ArticleRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Category    string   `json:"category" validate:"required,category"`
	Tags        []string `json:"tags"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Tags = cleanTags(a.Tags)

	return validate.Struct(a)
}

// Article builds a new, reaction-free article authored by authorID.
func (a *ArticleRequest) Article(authorID string, now time.Time) *model.Article {
	return &model.Article{
		AuthorID:    authorID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Category:    a.Category,
		Tags:        a.Tags,
		Likes:       model.NewUserSet(),
		Dislikes:    model.NewUserSet(),
		Blocks:      model.NewUserSet(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ArticleUpdateRequest is a partial update; nil fields are left alone.
type ArticleUpdateRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=3"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category" validate:"omitempty,category"`
	Tags        *[]string `json:"tags"`
}

func (u *ArticleUpdateRequest) Bind(r *http.Request) error {
	if u.Title == nil && u.Description == nil && u.Content == nil && u.Category == nil && u.Tags == nil {
		return ErrNoUpdateFields
	}

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		u.Title = &title
	}
	if u.Tags != nil {
		tags := cleanTags(*u.Tags)
		u.Tags = &tags
	}

	return validate.Struct(u)
}

// Apply writes the present fields onto a and bumps UpdatedAt.
func (u *ArticleUpdateRequest) Apply(a *model.Article, now time.Time) {
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Content != nil {
		a.Content = *u.Content
	}
	if u.Category != nil {
		a.Category = *u.Category
	}
	if u.Tags != nil {
		a.Tags = *u.Tags
	}
	a.UpdatedAt = now
}

type ReactionRequest struct {
	Action string `json:"action"`

	action reaction.Action
}

func (rr *ReactionRequest) Bind(r *http.Request) error {
	a, err := reaction.ParseAction(rr.Action)
	if err != nil {
		return err
	}
	rr.action = a

	return nil
}

func (rr *ReactionRequest) Parsed() reaction.Action {
	return rr.action
}

// PreferencesRequest replaces a user's category preferences. Values are kept
// verbatim and not checked against the category list.
type PreferencesRequest struct {
	Preferences []string `json:"preferences"`
}

func (p *PreferencesRequest) Bind(r *http.Request) error {
	p.Preferences = model.NormalizePreferences(p.Preferences)

	return nil
}

// cleanTags trims every value and drops the empty ones.
func cleanTags(tags []string) []string {
	trimmed := lo.Map(tags, func(t string, _ int) string {
		return strings.TrimSpace(t)
	})

	return lo.Filter(trimmed, func(t string, _ int) bool {
		return t != ""
	})
}
