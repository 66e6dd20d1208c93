package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

// Store persists users. Email and phone are unique; Create returns
// model.ErrUserExists when either is taken. Lookups return
// model.ErrUserNotFound.
type Store interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	// FindByLogin looks a user up by email or phone.
	FindByLogin(ctx context.Context, emailOrPhone string) (*model.User, error)
	// Update runs fn on a copy of the stored user and saves the result.
	Update(ctx context.Context, id string, fn func(u *model.User) error) (*model.User, error)
}

const hashCost = 10

func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(h), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
