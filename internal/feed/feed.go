// Package feed builds the per-viewer article feed.
//
// A feed is the preference-filtered, newest-first list of articles, each
// decorated with the viewer's own reaction flags and the reaction counts.
// Everything here is a read-only projection of the articles passed in.
package feed

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

var ErrViewerRequired = errors.New("viewer required")

// Annotation is the viewer-relative view of an article's reaction sets.
type Annotation struct {
	IsLiked       bool `json:"isLiked"`
	IsDisliked    bool `json:"isDisliked"`
	IsBlocked     bool `json:"isBlocked"`
	LikesCount    int  `json:"likesCount"`
	DislikesCount int  `json:"dislikesCount"`
	BlocksCount   int  `json:"blocksCount"`
}

type AnnotatedArticle struct {
	model.ArticleWithAuthorExpanded
	Annotation
}

// Annotate computes the viewer's flags and the counts from the current sets.
func Annotate(a *model.Article, viewerID string) Annotation {
	return Annotation{
		IsLiked:       a.Likes.Has(viewerID),
		IsDisliked:    a.Dislikes.Has(viewerID),
		IsBlocked:     a.Blocks.Has(viewerID),
		LikesCount:    a.Likes.Len(),
		DislikesCount: a.Dislikes.Len(),
		BlocksCount:   a.Blocks.Len(),
	}
}

// Project filters articles by preferred categories (all of them when the
// list is empty), orders them newest first and annotates them for viewerID.
// Articles with equal CreatedAt keep their input order.
func Project(articles []model.ArticleWithAuthorExpanded, viewerID string, preferred []string) ([]AnnotatedArticle, error) {
	if viewerID == "" {
		return nil, ErrViewerRequired
	}

	kept := lo.Filter(articles, func(a model.ArticleWithAuthorExpanded, _ int) bool {
		return len(preferred) == 0 || lo.Contains(preferred, a.Category)
	})
	newestFirst(kept)

	return lo.Map(kept, func(a model.ArticleWithAuthorExpanded, _ int) AnnotatedArticle {
		return AnnotatedArticle{
			ArticleWithAuthorExpanded: a,
			Annotation:                Annotate(&a.Article, viewerID),
		}
	}), nil
}

// ProjectAuthored returns the articles written by authorID, newest first.
func ProjectAuthored(articles []model.ArticleWithAuthorExpanded, authorID string) []model.ArticleWithAuthorExpanded {
	kept := lo.Filter(articles, func(a model.ArticleWithAuthorExpanded, _ int) bool {
		return a.AuthorID == authorID
	})
	newestFirst(kept)

	return kept
}

func newestFirst(articles []model.ArticleWithAuthorExpanded) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
}
