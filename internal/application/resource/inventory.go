package resource

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// InventoryService movimientos de inventario. No recalcula stock ni costo promedio:
// tras registrar un movimiento se releen los productos del backend.
type InventoryService struct {
	movements *Collection[entity.InventoryMovement, dto.CreateMovementRequest, struct{}]
}

// NewInventoryService construye el servicio.
func NewInventoryService(b Backend, c *query.Cache) *InventoryService {
	return &InventoryService{movements: NewCollection[entity.InventoryMovement, dto.CreateMovementRequest, struct{}](b, c, Config{
		Name: Movements, Path: "/inventory/movements", Invalidates: []string{Movements, Products},
	})}
}

// Resource nombre del recurso.
func (s *InventoryService) Resource() string { return Movements }

// ListMovements movimientos de un producto; productID vacío lista todos.
func (s *InventoryService) ListMovements(ctx context.Context, productID string) ([]entity.InventoryMovement, error) {
	return s.movements.List(ctx, url.Values{"productId": {productID}})
}

// List permite usar el servicio como fuente de una página de listado.
func (s *InventoryService) List(ctx context.Context, params url.Values) ([]entity.InventoryMovement, error) {
	return s.movements.List(ctx, params)
}

// Create registra un movimiento (alias de CreateMovement para páginas genéricas).
func (s *InventoryService) Create(ctx context.Context, in dto.CreateMovementRequest) (entity.InventoryMovement, error) {
	return s.CreateMovement(ctx, in)
}

// CreateMovement valida y registra un movimiento. unitPrice solo se envía en entradas.
func (s *InventoryService) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (entity.InventoryMovement, error) {
	if err := ValidateMovement(&in); err != nil {
		return entity.InventoryMovement{}, err
	}
	return s.movements.Create(ctx, in)
}

// ValidateMovement normaliza y valida el payload: productId requerido, tipo IN u OUT,
// cantidad positiva, precio unitario requerido y no negativo solo en IN.
func ValidateMovement(in *dto.CreateMovementRequest) error {
	var msgs []string
	if in.ProductID == "" {
		msgs = append(msgs, "Selecciona un producto")
	}
	if !in.Type.Valid() {
		msgs = append(msgs, "El tipo de movimiento debe ser IN u OUT")
	}
	if in.Quantity <= 0 {
		msgs = append(msgs, "La cantidad debe ser mayor a 0")
	}
	switch in.Type {
	case entity.MovementTypeIN:
		if in.UnitPrice == nil {
			msgs = append(msgs, "El precio unitario es requerido en entradas")
		} else if in.UnitPrice.LessThan(decimal.Zero) {
			msgs = append(msgs, "El precio unitario no puede ser negativo")
		}
	case entity.MovementTypeOUT:
		in.UnitPrice = nil
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}
