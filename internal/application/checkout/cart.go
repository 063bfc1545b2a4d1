// Package checkout mantiene el carrito de "Nueva factura" de cada sesión y lo
// convierte en una venta del backend. Los totales del carrito son solo una
// estimación para mostrar; los definitivos (impuestos, numeración) vienen del backend.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// Catalog fuente de productos para agregar al carrito.
type Catalog interface {
	List(ctx context.Context, params url.Values) ([]entity.Product, error)
}

// Register registra la venta en el backend.
type Register interface {
	Create(ctx context.Context, in dto.CreateSaleRequest) (entity.Sale, error)
}

// Line línea del carrito.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// View estado del carrito.
type View struct {
	Items          []Line          `json:"items"`
	Count          int             `json:"count"`
	EstimatedTotal decimal.Decimal `json:"estimatedTotal"`
}

type cart struct {
	lines  []Line
	usedAt time.Time
}

func (c *cart) view() View {
	v := View{Items: make([]Line, len(c.lines)), EstimatedTotal: decimal.Zero}
	for i, l := range c.lines {
		l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		v.Items[i] = l
		v.Count += l.Quantity
		v.EstimatedTotal = v.EstimatedTotal.Add(l.Subtotal)
	}
	return v
}

// Carts carritos por scope de sesión.
type Carts struct {
	catalog  Catalog
	register Register

	mu    sync.Mutex
	carts map[string]*cart
	now   func() time.Time
}

// NewCarts construye el registro de carritos.
func NewCarts(catalog Catalog, register Register) *Carts {
	return &Carts{catalog: catalog, register: register, carts: map[string]*cart{}, now: time.Now}
}

// with ejecuta fn con el carrito de la sesión del contexto bajo el lock.
func (cs *Carts) with(ctx context.Context, fn func(c *cart) error) (View, error) {
	scope := session.Scope(ctx)
	if scope == "" {
		return View{}, domain.ErrNoSession
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.carts[scope]
	if !ok {
		c = &cart{}
		cs.carts[scope] = c
	}
	c.usedAt = cs.now()
	err := fn(c)
	if len(c.lines) == 0 {
		delete(cs.carts, scope)
	}
	return c.view(), err
}

// Get carrito actual.
func (cs *Carts) Get(ctx context.Context) (View, error) {
	return cs.with(ctx, func(*cart) error { return nil })
}

// Add agrega un producto; si ya estaba, suma la cantidad. Cantidad 0 cuenta como 1.
func (cs *Carts) Add(ctx context.Context, in dto.AddCartItemRequest) (View, error) {
	if in.ProductID == "" {
		return cs.Get(ctx)
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	products, err := cs.catalog.List(ctx, nil)
	if err != nil {
		return View{}, err
	}
	product, err := findProduct(products, in.ProductID)
	if err != nil {
		return View{}, err
	}
	return cs.with(ctx, func(c *cart) error {
		for i := range c.lines {
			if c.lines[i].ProductID == product.ID {
				return checkStock(*product, c.lines[i].Quantity+qty, func() { c.lines[i].Quantity += qty })
			}
		}
		return checkStock(*product, qty, func() {
			c.lines = append(c.lines, Line{
				ProductID: product.ID,
				Name:      product.Name,
				SKU:       product.SKU,
				Quantity:  qty,
				UnitPrice: product.SalePrice,
			})
		})
	})
}

func findProduct(products []entity.Product, id string) (*entity.Product, error) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("checkout: producto %s: %w", id, domain.ErrNotFound)
}

func checkStock(p entity.Product, want int, apply func()) error {
	if want > p.Stock {
		return domain.NewValidationError(fmt.Sprintf("Stock insuficiente para %s. Disponible: %d", p.Name, p.Stock))
	}
	apply()
	return nil
}

// Update cambia la cantidad de la línea index; una cantidad <= 0 la quita.
// Una cantidad nueva se valida contra el stock vigente del catálogo.
func (cs *Carts) Update(ctx context.Context, index, quantity int) (View, error) {
	var products []entity.Product
	if quantity > 0 {
		var err error
		if products, err = cs.catalog.List(ctx, nil); err != nil {
			return View{}, err
		}
	}
	return cs.with(ctx, func(c *cart) error {
		if index < 0 || index >= len(c.lines) {
			return fmt.Errorf("checkout: línea %d: %w", index, domain.ErrNotFound)
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:index], c.lines[index+1:]...)
			return nil
		}
		product, err := findProduct(products, c.lines[index].ProductID)
		if err != nil {
			return err
		}
		return checkStock(*product, quantity, func() { c.lines[index].Quantity = quantity })
	})
}

// Remove quita la línea index.
func (cs *Carts) Remove(ctx context.Context, index int) (View, error) {
	return cs.Update(ctx, index, 0)
}

// Cancel vacía el carrito.
func (cs *Carts) Cancel(ctx context.Context) (View, error) {
	return cs.with(ctx, func(c *cart) error {
		c.lines = nil
		return nil
	})
}

// Drop descarta el carrito de un scope (cierre de sesión).
func (cs *Carts) Drop(scope string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.carts, scope)
}

// Sweep descarta los carritos sin uso en maxIdle (sesiones abandonadas sin logout)
// y devuelve cuántos quitó.
func (cs *Carts) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	now := cs.now()
	n := 0
	for scope, c := range cs.carts {
		if now.Sub(c.usedAt) >= maxIdle {
			delete(cs.carts, scope)
			n++
		}
	}
	return n
}

// Checkout registra la venta con las líneas del carrito y lo vacía si el backend la acepta.
// El carrito no se bloquea durante la llamada: si cambia mientras tanto, solo se
// descartan las líneas enviadas.
func (cs *Carts) Checkout(ctx context.Context, in dto.CheckoutRequest) (entity.Sale, error) {
	current, err := cs.Get(ctx)
	if err != nil {
		return entity.Sale{}, err
	}
	if len(current.Items) == 0 {
		return entity.Sale{}, domain.NewValidationError(resource.EmptySaleMessage)
	}
	req := dto.CreateSaleRequest{Notes: in.Notes, CustomerID: in.CustomerID}
	for _, l := range current.Items {
		req.Items = append(req.Items, dto.SaleItemRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	sale, err := cs.register.Create(ctx, req)
	if err != nil {
		return entity.Sale{}, err
	}
	_, _ = cs.with(ctx, func(c *cart) error {
		c.lines = removeSent(c.lines, current.Items)
		return nil
	})
	return sale, nil
}

func removeSent(lines, sent []Line) []Line {
	out := lines[:0]
	for _, l := range lines {
		keep := true
		for _, s := range sent {
			if l.ProductID == s.ProductID && l.Quantity == s.Quantity {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, l)
		}
	}
	return out
}

// Len cantidad de carritos abiertos.
func (cs *Carts) Len() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.carts)
}
