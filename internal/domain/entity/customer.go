package entity

import "time"

// Customer representa un cliente (facturación).
type Customer struct {
	ID             string    `json:"id"`
	DocumentNumber string    `json:"documentNumber"` // cédula o RUC
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}
