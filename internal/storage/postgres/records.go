package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

/*
userRecord is the users table.

Email and Phone are unique; Preferences is a text[] of category names.
UpdatedAt is written by the application, not by gorm.
*/
type userRecord struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string `gorm:"uniqueIndex;not null"`
	DOB          time.Time
	PasswordHash string         `gorm:"not null"`
	Preferences  pq.StringArray `gorm:"type:text[]"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userRecord) TableName() string {
	return "users"
}

func newUserRecord(u *model.User) userRecord {
	return userRecord{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		DOB:          u.DOB,
		PasswordHash: u.PasswordHash,
		Preferences:  pq.StringArray(u.Preferences),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) model() *model.User {
	return &model.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		DOB:          r.DOB,
		PasswordHash: r.PasswordHash,
		Preferences:  append([]string{}, r.Preferences...),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

/*
articleRecord is the articles table.

AuthorID: owning user, "belongs-to" relation, cascades on user delete
Likes, Dislikes, Blocks: text[] of user ids, kept duplicate free by the
application (model.UserSet)
*/
type articleRecord struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	AuthorID    string     `gorm:"type:uuid;index;not null"`
	Author      userRecord `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title       string     `gorm:"not null"`
	Description string
	Content     string
	Category    string         `gorm:"index;not null"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	ImageURL    string
	Likes       pq.StringArray `gorm:"type:text[]"`
	Dislikes    pq.StringArray `gorm:"type:text[]"`
	Blocks      pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime:false"`
}

func (articleRecord) TableName() string {
	return "articles"
}

func newArticleRecord(a *model.Article) articleRecord {
	return articleRecord{
		ID:          a.ID,
		AuthorID:    a.AuthorID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Category:    a.Category,
		Tags:        pq.StringArray(a.Tags),
		ImageURL:    a.ImageURL,
		Likes:       pq.StringArray(a.Likes.Slice()),
		Dislikes:    pq.StringArray(a.Dislikes.Slice()),
		Blocks:      pq.StringArray(a.Blocks.Slice()),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r articleRecord) model() *model.Article {
	return &model.Article{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Category:    r.Category,
		Tags:        append([]string{}, r.Tags...),
		ImageURL:    r.ImageURL,
		Likes:       model.NewUserSet(r.Likes...),
		Dislikes:    model.NewUserSet(r.Dislikes...),
		Blocks:      model.NewUserSet(r.Blocks...),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// expanded requires Author to be preloaded.
func (r articleRecord) expanded() model.ArticleWithAuthorExpanded {
	return r.model().Expand(model.Author{
		ID:        r.Author.ID,
		FirstName: r.Author.FirstName,
		Email:     r.Author.Email,
	})
}
