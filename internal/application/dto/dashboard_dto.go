package dto

import (
	"github.com/shopspring/decimal"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// ChartPoint punto de la serie del gráfico del dashboard.
type ChartPoint struct {
	Name      string          `json:"name"`
	Ventas    int             `json:"ventas"`
	Ingresos  decimal.Decimal `json:"ingresos"`
	Impuestos decimal.Decimal `json:"impuestos"`
}

// ReportsView respuesta de GET /reports: reporte diario y mensual tal como los entrega el backend.
type ReportsView struct {
	Status     string                `json:"status"`
	Daily      *entity.DailyReport   `json:"daily,omitempty"`
	Monthly    *entity.MonthlyReport `json:"monthly,omitempty"`
	MonthLabel string                `json:"monthLabel,omitempty"`
	Chart      []ChartPoint          `json:"chart"`
	Notice     *Notice               `json:"notice,omitempty"`
}

// DashboardView respuesta de GET /dashboard.
type DashboardView struct {
	Status       string          `json:"status"`
	Date         string          `json:"date"`
	TotalSales   int             `json:"totalSales"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalTax     decimal.Decimal `json:"totalTax"`
	Chart        []ChartPoint    `json:"chart"`
	Notice       *Notice         `json:"notice,omitempty"`
}
