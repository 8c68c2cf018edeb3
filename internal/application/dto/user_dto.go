package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" jsonschema:"required,format=email"`
	Password string `json:"password" jsonschema:"required,minLength=8"`
	Name     string `json:"name" jsonschema:"required,minLength=1,maxLength=200"`
	Role     string `json:"role" jsonschema:"required,enum=user,enum=admin"`
}

// UpdateUserRequest cambios de rol o estado; campos vacíos no se tocan.
type UpdateUserRequest struct {
	Role   string `json:"role,omitempty" jsonschema:"enum=user,enum=admin"`
	Status string `json:"status,omitempty" jsonschema:"enum=active,enum=inactive"`
}

// RegisterRequest entrada para registro (auth). El rol siempre es "user".
type RegisterRequest struct {
	Email    string `json:"email" jsonschema:"required,format=email"`
	Password string `json:"password" jsonschema:"required,minLength=8"`
	Name     string `json:"name,omitempty" jsonschema:"maxLength=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" jsonschema:"required,format=email"`
	Password string `json:"password" jsonschema:"required,minLength=1"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
