package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/diego1198/inventory-frontend/internal/application/analytics"
)

// DashboardHandler maneja el Dashboard y la página de Reportes.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del día
// @Description  Ventas, ingresos e impuestos del día tal como los reporta el backend, más la serie del gráfico.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (vacío = hoy)"
// @Success      200  {object}  dto.DashboardView
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	view := h.uc.GetDashboard(c.UserContext(), c.Query("date"))
	return respondView(c, view, view.Notice)
}

// Reports godoc
// @Summary      Reporte diario y mensual
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        date   query  string  false  "YYYY-MM-DD (vacío = hoy)"
// @Param        year   query  int     false  "Año (0 = actual)"
// @Param        month  query  int     false  "Mes 1-12 (0 = actual)"
// @Success      200  {object}  dto.ReportsView
// @Router       /reports [get]
func (h *DashboardHandler) Reports(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	if month < 0 || month > 12 {
		month = 0
	}
	year := c.QueryInt("year", 0)
	if year < 0 {
		year = 0
	}
	view := h.uc.GetReports(c.UserContext(), c.Query("date"), year, month)
	return respondView(c, view, view.Notice)
}
