package user

import (
	"cashbox/internal"
)

// CreateUserDTO is the payload for adding a directory record.
type CreateUserDTO struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	if dto.Role != RoleAdmin && dto.Role != RoleStaff {
		return internal.NewValidationError("role must be ADMIN or STAFF", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateUserDTO patches the mutable fields of a record. An empty password
// leaves the stored hash untouched.
type UpdateUserDTO struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Role != RoleAdmin && dto.Role != RoleStaff {
		return internal.NewValidationError("role must be ADMIN or STAFF", internal.ErrCodeValidationFailed)
	}
	return nil
}
