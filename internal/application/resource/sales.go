package resource

import (
	"context"
	"net/url"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// EmptySaleMessage aviso cuando se intenta confirmar una venta sin productos.
const EmptySaleMessage = "Debes agregar al menos un producto a la venta"

// SaleService ventas. Totales, impuestos y numeración los calcula el backend.
type SaleService struct {
	sales *Collection[entity.Sale, dto.CreateSaleRequest, struct{}]
}

// NewSaleService construye el servicio. Una venta altera stock y reportes.
func NewSaleService(b Backend, c *query.Cache) *SaleService {
	return &SaleService{sales: NewCollection[entity.Sale, dto.CreateSaleRequest, struct{}](b, c, Config{
		Name: Sales, Path: "/sales", Invalidates: []string{Sales, Products, Reports},
	})}
}

// Resource nombre del recurso.
func (s *SaleService) Resource() string { return Sales }

// List ventas registradas.
func (s *SaleService) List(ctx context.Context, params url.Values) ([]entity.Sale, error) {
	return s.sales.List(ctx, params)
}

// Get venta por id.
func (s *SaleService) Get(ctx context.Context, id string) (entity.Sale, error) {
	return s.sales.Get(ctx, id)
}

// Create registra una venta con al menos una línea de cantidad positiva.
func (s *SaleService) Create(ctx context.Context, in dto.CreateSaleRequest) (entity.Sale, error) {
	if len(in.Items) == 0 {
		return entity.Sale{}, domain.NewValidationError(EmptySaleMessage)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return entity.Sale{}, domain.NewValidationError("Cada producto debe tener una cantidad mayor a 0")
		}
	}
	return s.sales.Create(ctx, in)
}
