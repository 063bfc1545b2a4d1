package dto

import (
	"github.com/shopspring/decimal"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// CreateMovementRequest body para POST /inventory/movements.
// UnitPrice solo viaja en entradas (IN); el promedio ponderado lo calcula el backend.
type CreateMovementRequest struct {
	ProductID string              `json:"productId" validate:"required"`
	Type      entity.MovementType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int                 `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal    `json:"unitPrice,omitempty"`
	Reason    string              `json:"reason,omitempty"`
}

// CreateSaleRequest body para POST /sales.
type CreateSaleRequest struct {
	Items      []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string            `json:"notes,omitempty"`
	CustomerID string            `json:"customerId,omitempty"`
}

// SaleItemRequest línea de venta enviada al backend.
type SaleItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// AddCartItemRequest agrega un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest cambia la cantidad de una línea del carrito.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest datos opcionales al confirmar la venta.
type CheckoutRequest struct {
	Notes      string `json:"notes,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
}
