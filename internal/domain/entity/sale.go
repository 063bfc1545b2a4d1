package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada. Subtotal, Tax, Total e InvoiceNumber los calcula el backend.
type Sale struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	User          *SaleUser       `json:"user,omitempty"`
	Customer      *SaleCustomer   `json:"customer,omitempty"`
	Items         []SaleItem      `json:"items"`
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
	Product   ProductRef      `json:"product"`
}

// SaleUser cajero que registró la venta.
type SaleUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SaleCustomer cliente asociado a la venta.
type SaleCustomer struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"documentNumber"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
}
