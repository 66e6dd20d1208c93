package model

import "errors"

var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrNotAuthor          = errors.New("only the author may change this article")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
