package models

import "time"

// User is a user record as returned by the user API.
// @Description User record
type User struct {
	ID        string     `json:"id" example:"4f7c1d2e-8a9b-4c3d-9e1f-2a3b4c5d6e7f"`
	FirstName string     `json:"firstName" example:"Ada"`
	LastName  string     `json:"lastName" example:"Lovelace"`
	Email     string     `json:"email" example:"ada@example.org"`
	Active    bool       `json:"active" example:"true"`
	CreatedAt *time.Time `json:"createdAt,omitempty" example:"2024-03-15T14:30:00Z"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" example:"2024-03-15T14:30:00Z"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
