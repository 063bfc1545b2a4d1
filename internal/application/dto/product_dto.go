package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. PurchasePrice lo recalcula
// el backend en cada entrada de inventario.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku,omitempty" validate:"omitempty,max=100"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int             `json:"stock" validate:"min=0"`
	CategoryID    string          `json:"categoryId,omitempty"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description,omitempty"`
	SKU           *string          `json:"sku,omitempty" validate:"omitempty,max=100"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	DocumentNumber string `json:"documentNumber" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Address        string `json:"address,omitempty"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
type UpdateCustomerRequest struct {
	DocumentNumber *string `json:"documentNumber,omitempty" validate:"omitempty,min=1"`
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
}
