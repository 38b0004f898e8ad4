package auth

import (
	"strings"
	"time"
)

// Role is the access level carried by a user and its tokens.
type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// User is a domain entity representing a system user.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	IsMaster     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public projection of a User; it never carries the hash.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	IsMaster  bool      `json:"isMaster"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsMaster:  u.IsMaster,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Claims is the decoded payload of a session token.
type Claims struct {
	TokenID   string
	UserID    int64
	Email     string
	Role      Role
	IsMaster  bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NormalizeEmail trims and lower-cases an email so it can be used as a login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
