// Package models defines the data structures that map to database tables
// and the projection types returned by the HTTP API.
package models

import "time"

// User represents a forum account. The Admin flag grants access to
// category/tag management and to privileged post projections.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// UserView is the public shape of a user account.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// View converts a user to its public shape.
func (u *User) View() UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Admin:    u.Admin,
	}
}
