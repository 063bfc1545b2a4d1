// Package analytics arma las vistas del Dashboard y de Reportes a partir de los
// reportes diario y mensual del backend. No recalcula totales: solo los presenta.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// Reports fuente de reportes (la implementa resource.ReportService).
type Reports interface {
	Daily(ctx context.Context, date string) (entity.DailyReport, error)
	Monthly(ctx context.Context, year, month int) (entity.MonthlyReport, error)
}

// DashboardUseCase construye las vistas de resumen.
type DashboardUseCase struct {
	reports Reports
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now nil usa time.Now.
func NewDashboardUseCase(reports Reports, now func() time.Time) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{reports: reports, now: now}
}

// GetDashboard resumen del día date (YYYY-MM-DD; vacío = hoy).
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, date string) dto.DashboardView {
	if date == "" {
		date = uc.now().Format(time.DateOnly)
	}
	view := dto.DashboardView{Date: date, Chart: []dto.ChartPoint{}}
	daily, err := uc.reports.Daily(ctx, date)
	if err != nil {
		n := crud.NoticeFromError(err, "Error al cargar el dashboard")
		view.Status = string(query.StatusError)
		view.Notice = &n
		return view
	}
	view.Status = string(query.StatusSuccess)
	if daily.Date != "" {
		view.Date = daily.Date
	}
	view.TotalSales = daily.TotalSales
	view.TotalRevenue = daily.TotalRevenue
	view.TotalTax = daily.TotalTax
	view.Chart = append(view.Chart, DailyPoint(daily, view.Date))
	return view
}

// GetReports reporte diario y mensual. Las dos lecturas corren en paralelo; si una
// falla se entrega la otra con el aviso de error.
func (uc *DashboardUseCase) GetReports(ctx context.Context, date string, year, month int) dto.ReportsView {
	type dailyResult struct {
		report entity.DailyReport
		err    error
	}
	type monthlyResult struct {
		report entity.MonthlyReport
		err    error
	}

	dailyCh := make(chan dailyResult, 1)
	monthlyCh := make(chan monthlyResult, 1)

	go func() {
		r, err := uc.reports.Daily(ctx, date)
		dailyCh <- dailyResult{r, err}
	}()
	go func() {
		r, err := uc.reports.Monthly(ctx, year, month)
		monthlyCh <- monthlyResult{r, err}
	}()

	daily := <-dailyCh
	monthly := <-monthlyCh

	view := dto.ReportsView{Status: string(query.StatusSuccess), Chart: []dto.ChartPoint{}}
	if daily.err == nil {
		view.Daily = &daily.report
		view.Chart = append(view.Chart, DailyPoint(daily.report, date))
	}
	if monthly.err == nil {
		view.Monthly = &monthly.report
		view.MonthLabel = MonthLabel(monthly.report.Month, monthly.report.Year)
		view.Chart = append(view.Chart, MonthlyPoint(monthly.report))
	}
	if err := firstErr(daily.err, monthly.err); err != nil {
		n := crud.NoticeFromError(err, "Error al cargar reportes")
		view.Status = string(query.StatusError)
		view.Notice = &n
	}
	return view
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// DailyPoint punto del gráfico para un reporte diario; name es la fecha.
func DailyPoint(r entity.DailyReport, fallbackDate string) dto.ChartPoint {
	name := r.Date
	if name == "" {
		name = fallbackDate
	}
	return dto.ChartPoint{Name: name, Ventas: r.TotalSales, Ingresos: r.TotalRevenue, Impuestos: r.TotalTax}
}

// MonthlyPoint punto del gráfico para un reporte mensual; name es "mes/año".
func MonthlyPoint(r entity.MonthlyReport) dto.ChartPoint {
	return dto.ChartPoint{
		Name:      fmt.Sprintf("%d/%d", r.Month, r.Year),
		Ventas:    r.TotalSales,
		Ingresos:  r.TotalRevenue,
		Impuestos: r.TotalTax,
	}
}

// MonthLabel etiqueta legible del mes, ej: "Febrero 2026". Mes fuera de rango devuelve "".
func MonthLabel(month, year int) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}
