package model

import "time"

// User data model. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DOB          time.Time `json:"dob"`
	PasswordHash string    `json:"-"`
	Preferences  []string  `json:"preferences"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	out := *u
	out.Preferences = append([]string{}, u.Preferences...)

	return &out
}

func (u *User) AsAuthor() Author {
	return Author{ID: u.ID, FirstName: u.FirstName, Email: u.Email}
}
