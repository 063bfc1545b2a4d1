package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// ReportService reportes de solo lectura. Sin parámetros el backend usa el día o mes actual.
type ReportService struct {
	backend Backend
	cache   *query.Cache
}

// NewReportService construye el servicio.
func NewReportService(b Backend, c *query.Cache) *ReportService {
	return &ReportService{backend: b, cache: c}
}

// DailyKey clave de caché del reporte diario.
func (s *ReportService) DailyKey(ctx context.Context, date string) query.Key {
	return query.NewKey(session.Scope(ctx), Reports, url.Values{"kind": {"daily"}, "date": {date}})
}

// MonthlyKey clave de caché del reporte mensual.
func (s *ReportService) MonthlyKey(ctx context.Context, year, month int) query.Key {
	return query.NewKey(session.Scope(ctx), Reports, monthlyParams(year, month, true))
}

// Daily reporte del día date (YYYY-MM-DD; vacío = hoy).
func (s *ReportService) Daily(ctx context.Context, date string) (entity.DailyReport, error) {
	params := url.Values{"date": {date}}
	return query.Get(ctx, s.cache, s.DailyKey(ctx, date), func(fctx context.Context) (entity.DailyReport, error) {
		var out entity.DailyReport
		if err := s.backend.Do(fctx, http.MethodGet, "/reports/daily", clean(params), nil, &out); err != nil {
			return out, fmt.Errorf("reports: diario: %w", err)
		}
		return out, nil
	})
}

// Monthly reporte del mes (year o month en 0 = actual).
func (s *ReportService) Monthly(ctx context.Context, year, month int) (entity.MonthlyReport, error) {
	return query.Get(ctx, s.cache, s.MonthlyKey(ctx, year, month), func(fctx context.Context) (entity.MonthlyReport, error) {
		var out entity.MonthlyReport
		if err := s.backend.Do(fctx, http.MethodGet, "/reports/monthly", monthlyParams(year, month, false), nil, &out); err != nil {
			return out, fmt.Errorf("reports: mensual: %w", err)
		}
		return out, nil
	})
}

func monthlyParams(year, month int, withKind bool) url.Values {
	v := url.Values{}
	if withKind {
		v.Set("kind", "monthly")
	}
	if year > 0 {
		v.Set("year", strconv.Itoa(year))
	}
	if month > 0 {
		v.Set("month", strconv.Itoa(month))
	}
	return v
}

// clean elimina parámetros vacíos para no enviarlos al backend.
func clean(params url.Values) url.Values {
	out := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				out.Add(k, v)
			}
		}
	}
	return out
}
