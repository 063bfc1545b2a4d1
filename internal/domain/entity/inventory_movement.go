package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  MovementType = "IN"  // entrada (compra); recalcula el costo promedio en el backend
	MovementTypeOUT MovementType = "OUT" // salida o ajuste negativo
)

// Valid indica si el tipo es IN u OUT.
func (t MovementType) Valid() bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// InventoryMovement representa un movimiento de inventario registrado por el backend.
type InventoryMovement struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Product   *ProductRef      `json:"product,omitempty"`
	Type      MovementType     `json:"type"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	UserID    string           `json:"userId,omitempty"`
	User      *UserRef         `json:"user,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ProductName nombre del producto embebido (vacío si el backend no lo incluyó).
func (m InventoryMovement) ProductName() string {
	if m.Product == nil {
		return ""
	}
	return m.Product.Name
}

// ProductRef producto embebido en movimientos y líneas de venta.
type ProductRef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserRef usuario embebido en movimientos.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
