package dto

import "github.com/diego1198/inventory-frontend/internal/domain/entity"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest alta pública de usuario.
type RegisterRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Role      entity.Role `json:"role,omitempty" validate:"omitempty,oneof=admin cashier"`
}

// AuthResponse respuesta del backend a login y registro.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        entity.User `json:"user"`
}

// LoginResponse respuesta del gateway: usuario y destino saneado.
type LoginResponse struct {
	User     entity.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// CreateUserRequest alta de usuario desde la página de usuarios.
type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Role      entity.Role `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin cashier"`
}

// UpdateUserRequest campos modificables de un usuario.
type UpdateUserRequest struct {
	Email     *string      `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string      `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string      `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Role      *entity.Role `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin cashier"`
}

// MeResponse identidad de la sesión actual y su menú.
type MeResponse struct {
	User      entity.User `json:"user"`
	RoleLabel string      `json:"roleLabel"`
}
