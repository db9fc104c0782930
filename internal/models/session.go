package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole enumerates portal roles.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleEmployee   UserRole = "employee"
	RoleLaboratory UserRole = "laboratory"
)

// Valid reports whether r is a portal role.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleLaboratory
}

// HomePath is the landing page for the role.
func (r UserRole) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployee:
		return "/employee/dashboard"
	case RoleLaboratory:
		return "/laboratory/dashboard"
	default:
		return "/signin"
	}
}

// CredentialClaims are the claims the portal reads from the API credential.
type CredentialClaims struct {
	UserID string   `json:"_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SignInRequest holds the sign-in form.
type SignInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignInGrant is the API response to a successful sign-in.
type SignInGrant struct {
	Token string   `json:"userAuthToken"`
	Role  UserRole `json:"role"`
}

// Session binds a portal cookie to an API credential.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the credential is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Profile is the signed-in account as reported by the API.
type Profile struct {
	ID             string        `json:"_id"`
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	ContactNumber  LooseString   `json:"contactNumber,omitempty"`
	Image          string        `json:"image,omitempty"`
	Role           UserRole      `json:"role,omitempty"`
	Username       string        `json:"username,omitempty"`
	Address        string        `json:"address,omitempty"`
	Gender         string        `json:"gender,omitempty"`
	JobRole        string        `json:"jobRole,omitempty"`
	HireDate       Timestamp     `json:"hireDate"`
	About          string        `json:"about,omitempty"`
	Timings        WeeklyTimings `json:"timings,omitempty"`
	IsActive       bool          `json:"isActive"`
	IsNotification bool          `json:"isNotification"`
}

// ChangePasswordRequest holds the password change form.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6,nefield=OldPassword"`
}
