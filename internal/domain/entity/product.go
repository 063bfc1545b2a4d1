package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// PurchasePrice es el costo promedio ponderado calculado por el backend en cada entrada (IN);
// Stock solo cambia vía movimientos de inventario o ventas.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int             `json:"stock"`
	CategoryID    string          `json:"categoryId,omitempty"`
	Category      *CategoryRef    `json:"category,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
}

// CategoryName nombre de la categoría o el texto por defecto.
func (p Product) CategoryName() string {
	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name
	}
	return "Sin categoría"
}

// CategoryRef categoría embebida en un producto.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
