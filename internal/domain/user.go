package domain

import "time"

// Role enumerates user roles.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// DefaultProfileImage is assigned to newly joined users.
const DefaultProfileImage = "/assets/icons/ic_profile"

// User is the domain model for registered members.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
