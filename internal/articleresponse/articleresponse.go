package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/articlefeed/internal/feed"
	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

// ArticleResponse is the response payload for an Article with its author
// populated and, when a viewer is known, the viewer's reaction annotation.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
type ArticleResponse struct {
	model.ArticleWithAuthorExpanded
	*feed.Annotation
}

func NewArticleResponse(a model.ArticleWithAuthorExpanded) *ArticleResponse {
	return &ArticleResponse{ArticleWithAuthorExpanded: a}
}

// NewAnnotatedResponse decorates a for viewerID.
func NewAnnotatedResponse(a model.ArticleWithAuthorExpanded, viewerID string) *ArticleResponse {
	annotation := feed.Annotate(&a.Article, viewerID)

	return &ArticleResponse{ArticleWithAuthorExpanded: a, Annotation: &annotation}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// FeedResponse wraps a list the way the web client expects it.
type FeedResponse struct {
	Success bool               `json:"success"`
	Feed    []*ArticleResponse `json:"feed"`
}

func (f *FeedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewFeedResponse(annotated []feed.AnnotatedArticle) *FeedResponse {
	list := make([]*ArticleResponse, 0, len(annotated))
	for _, a := range annotated {
		annotation := a.Annotation
		list = append(list, &ArticleResponse{ArticleWithAuthorExpanded: a.ArticleWithAuthorExpanded, Annotation: &annotation})
	}

	return &FeedResponse{Success: true, Feed: list}
}

func NewAuthoredResponse(articles []model.ArticleWithAuthorExpanded) *FeedResponse {
	list := make([]*ArticleResponse, 0, len(articles))
	for _, a := range articles {
		list = append(list, NewArticleResponse(a))
	}

	return &FeedResponse{Success: true, Feed: list}
}

// ArticleEnvelope acknowledges a write with the stored article.
type ArticleEnvelope struct {
	Success bool             `json:"success"`
	Article *ArticleResponse `json:"article"`
}

func NewArticleEnvelope(a model.ArticleWithAuthorExpanded) *ArticleEnvelope {
	return &ArticleEnvelope{Success: true, Article: NewArticleResponse(a)}
}

func (e *ArticleEnvelope) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
