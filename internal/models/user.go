package models

// User represents the domain model for an account that can deploy resources
// This is a database-agnostic business entity
type User struct {
	ID             int64
	FirstName      string
	LastName       string
	Username       string
	Email          string
	HashedPassword string
	Disabled       bool
	Role           Role
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest represents the request body for creating a new user
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Disabled  bool   `json:"disabled"`
	Role      string `json:"role" binding:"required"`
	Password  string `json:"password" binding:"required"`
	// IsHashed marks the password as already bcrypt-hashed, so it is stored as-is
	IsHashed bool `json:"is_hashed"`
}

// UserResponse represents the response structure for a single user.
// The hashed password never leaves the service.
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Disabled  bool   `json:"disabled"`
	Role      string `json:"role"`
}

// ToResponse converts a domain User to a UserResponse DTO
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Disabled:  u.Disabled,
		Role:      u.Role.String(),
	}
}
