package model

import "time"

// Article data model. Author is stored by reference only; feed queries
// return ArticleWithAuthorExpanded instead.
type Article struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author"` // the author, immutable after create
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Likes       UserSet   `json:"likes"`
	Dislikes    UserSet   `json:"dislikes"`
	Blocks      UserSet   `json:"blocks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy, so reaction sets and tags of the copy can be
// changed without touching the original.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}

	out := *a
	out.Tags = append([]string(nil), a.Tags...)
	out.Likes = a.Likes.Clone()
	out.Dislikes = a.Dislikes.Clone()
	out.Blocks = a.Blocks.Clone()

	return &out
}

// IsAuthor reports whether userID owns the article.
func (a *Article) IsAuthor(userID string) bool {
	return userID != "" && a.AuthorID == userID
}

// Author is the public subset of a User embedded into populated articles.
type Author struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

// ArticleWithAuthorExpanded is an Article as returned by queries that
// populate the author record.
type ArticleWithAuthorExpanded struct {
	Article

	Author Author `json:"author"`
}

// Expand pairs the article with its author. The author id on the article
// wins over the one on the record.
func (a *Article) Expand(author Author) ArticleWithAuthorExpanded {
	author.ID = a.AuthorID

	return ArticleWithAuthorExpanded{Article: *a, Author: author}
}
