package domain

import (
	"time"
)

// Role is the access tier of a user. It is a closed set; anything else is
// rejected at registration time.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

// ParseRole maps a raw role string to a Role. An empty string falls back to
// Customer, matching the registration default.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleCustomer, true
	case RoleCustomer, RoleSeller, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID       string    `dynamodbav:"user_id"       json:"user_id"`
	Username     string    `dynamodbav:"username"      json:"username"`
	Email        string    `dynamodbav:"email"         json:"email"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	Role         Role      `dynamodbav:"role"          json:"role"`
	CreatedAt    time.Time `dynamodbav:"created_at"    json:"created_at"`
}

// Identity is the request-scoped acting user, extracted from the bearer
// token by the auth middleware and passed explicitly into service calls.
type Identity struct {
	UserID string
	Role   Role
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
