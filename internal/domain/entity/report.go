package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DailyReport resumen diario calculado por el backend.
type DailyReport struct {
	Date         string            `json:"date"`
	TotalSales   int               `json:"totalSales"`
	TotalRevenue decimal.Decimal   `json:"totalRevenue"`
	TotalTax     decimal.Decimal   `json:"totalTax"`
	TopProducts  []json.RawMessage `json:"topProducts"`
	Sales        []json.RawMessage `json:"sales"`
}

// MonthlyReport resumen mensual calculado por el backend.
type MonthlyReport struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	TotalSales   int             `json:"totalSales"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalTax     decimal.Decimal `json:"totalTax"`
}
