package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names checked by the permission gate
const (
	RoleSCJC      = "SCJC"
	RoleLibrarian = "Librarian"
	RoleManager   = "Manager"
)

// User is an account acting against the registry
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccessToken string    `json:"-"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created"`
}

// NewUser creates a new User with a generated UUID
func NewUser(username, accessToken string) *User {
	return &User{
		ID:          uuid.New().String(),
		Username:    username,
		AccessToken: accessToken,
		CreatedAt:   time.Now(),
	}
}

// HasRole reports whether the user holds the named role
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the named roles
func (u *User) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if u.HasRole(n) {
			return true
		}
	}
	return false
}
