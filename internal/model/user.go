package model

import "time"

// Roles a user record can carry. The seeded administrator gets RoleAdmin;
// everyone created through register gets RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// PublicUser is the wire representation of a user. It carries no password
// hash, so handlers can serialize it directly.
type PublicUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Public strips the password hash from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Now returns the timestamp format stored in CreatedAt.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
