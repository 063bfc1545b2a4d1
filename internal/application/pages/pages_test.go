package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/application/resource/resourcetest"
	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

func setup() (*Pages, *resourcetest.Backend) {
	b := resourcetest.New()
	c := query.New()
	p := New(Services{
		Products:   resource.NewProductService(b, c),
		Categories: resource.NewCategoryService(b, c),
		Customers:  resource.NewCustomerService(b, c),
		Users:      resource.NewUserService(b, c),
		Inventory:  resource.NewInventoryService(b, c),
		Sales:      resource.NewSaleService(b, c),
	}, nil)
	return p, b
}

func as(role entity.Role) context.Context {
	return session.WithContext(context.Background(), entity.Session{Token: "tok-" + string(role), User: entity.User{ID: "me", Role: role}})
}

func TestUsers_AdminNoPuedeCrearAdmin(t *testing.T) {
	p, b := setup()

	n := p.Users.Create(as(entity.RoleAdmin), dto.CreateUserRequest{
		Email: "a@b.com", Password: "secreto", FirstName: "Ana", LastName: "Ruiz", Role: entity.RoleAdmin,
	})
	assert.Equal(t, dto.NoticeError, n.Level)
	assert.Equal(t, "Solo puedes asignar los roles: Cajero", n.Message)
	assert.Zero(t, b.Count(http.MethodPost, "/users"))

	n = p.Users.Create(as(entity.RoleSuperadmin), dto.CreateUserRequest{
		Email: "a@b.com", Password: "secreto", FirstName: "Ana", LastName: "Ruiz", Role: entity.RoleAdmin,
	})
	assert.True(t, n.Succeeded())
	assert.Equal(t, 1, b.Count(http.MethodPost, "/users"))
}

func TestUsers_CajeroNoAsignaRoles(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/users", []entity.User{{ID: "u1", Role: entity.RoleCashier}})
	role := entity.RoleCashier
	n := p.Users.Update(as(entity.RoleCashier), "u1", dto.UpdateUserRequest{Role: &role})
	assert.Equal(t, "No tienes permisos para crear o modificar usuarios", n.Message)
	assert.Equal(t, []entity.Role{entity.RoleCashier}, RoleOptions(as(entity.RoleAdmin)))
}

func TestUsers_SuperadminNoSeDesactiva(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/users", []entity.User{{ID: "root", Role: entity.RoleSuperadmin}, {ID: "u2", Role: entity.RoleCashier}})
	ctx := as(entity.RoleSuperadmin)

	n := p.Users.Delete(ctx, "root", true)
	assert.Equal(t, dto.NoticeWarning, n.Level)
	assert.Zero(t, b.Count(http.MethodDelete, "/users/root"))

	n = p.Users.Delete(ctx, "u2", false)
	assert.Equal(t, dto.NoticeConfirm, n.Level)
	assert.Equal(t, "¿Estás seguro de que deseas desactivar este usuario?", n.Message)

	n = p.Users.Delete(ctx, "u2", true)
	assert.Equal(t, "Usuario desactivado exitosamente", n.Message)
	assert.Equal(t, 1, b.Count(http.MethodDelete, "/users/u2"))
}

func TestUsers_AdminNoModificaSuperadmin(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/users", []entity.User{
		{ID: "root", Role: entity.RoleSuperadmin},
		{ID: "a2", Role: entity.RoleAdmin},
		{ID: "u2", Role: entity.RoleCashier},
		{ID: "me", Role: entity.RoleAdmin},
	})
	ctx := as(entity.RoleAdmin)
	cashier := entity.RoleCashier
	name := "Nuevo"

	n := p.Users.Update(ctx, "root", dto.UpdateUserRequest{Role: &cashier})
	assert.Equal(t, dto.NoticeError, n.Level)
	assert.Equal(t, "No se puede modificar a un Super Administrador", n.Message)
	assert.Zero(t, b.Count(http.MethodPatch, "/users/root"))

	n = p.Users.Update(ctx, "a2", dto.UpdateUserRequest{FirstName: &name})
	assert.Equal(t, "Solo puedes asignar los roles: Cajero", n.Message)
	assert.Zero(t, b.Count(http.MethodPatch, "/users/a2"))

	n = p.Users.Update(ctx, "me", dto.UpdateUserRequest{Role: &cashier})
	assert.Equal(t, "No puedes cambiar tu propio rol", n.Message)
	assert.Zero(t, b.Count(http.MethodPatch, "/users/me"))

	n = p.Users.Update(ctx, "me", dto.UpdateUserRequest{FirstName: &name})
	assert.True(t, n.Succeeded())

	n = p.Users.Update(ctx, "u2", dto.UpdateUserRequest{FirstName: &name, Role: &cashier})
	assert.True(t, n.Succeeded())
	assert.Equal(t, 1, b.Count(http.MethodPatch, "/users/u2"))

	n = p.Users.Update(ctx, "fantasma", dto.UpdateUserRequest{FirstName: &name})
	assert.Equal(t, "Error al actualizar el usuario", n.Message)
	assert.Zero(t, b.Count(http.MethodPatch, "/users/fantasma"))
}

func TestCategories_ConfirmacionConNombre(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/categories", []entity.Category{{ID: "c1", Name: "Bebidas"}})

	n := p.Categories.Delete(as(entity.RoleAdmin), "c1", false)
	assert.Equal(t, `¿Estás seguro de eliminar la categoría "Bebidas"?`, n.Message)
	assert.Zero(t, b.Count(http.MethodDelete, "/categories/c1"))
}

func TestProducts_EdicionBloqueaStockYBuscaPorCategoria(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/products", []entity.Product{
		{ID: "p1", Name: "Leche", Stock: 4, Category: &entity.CategoryRef{ID: "c1", Name: "Lácteos"}},
		{ID: "p2", Name: "Pan"},
	})
	ctx := as(entity.RoleAdmin)

	f, err := p.Products.EditForm(ctx, "p1")
	require.NoError(t, err)
	assert.Contains(t, f.Locked, "stock")
	assert.Equal(t, 4, f.Values.Stock)

	v := p.Products.View(ctx, "lacteos")
	require.Len(t, v.Items, 1)
	assert.Equal(t, "p1", v.Items[0].ID)
	assert.Equal(t, 1, b.Count(http.MethodGet, "/products"), "el listado se lee una vez de la caché")
}

func TestMovements_SinProducto(t *testing.T) {
	p, b := setup()
	n := p.Movements.Submit(as(entity.RoleAdmin), "", []byte(`{"type":"IN","quantity":3}`))
	assert.Equal(t, dto.NoticeError, n.Level)
	assert.Equal(t, "Selecciona un producto", n.Message)
	assert.Zero(t, b.Count(http.MethodPost, "/inventory/movements"))
}

func TestMovements_EntradaRegistraEInvalidaProductos(t *testing.T) {
	p, b := setup()
	ctx := as(entity.RoleAdmin)
	b.On(http.MethodGet, "/products", []entity.Product{{ID: "p1", Stock: 5}})
	require.Len(t, p.Products.View(ctx, "").Items, 1)

	price := decimal.RequireFromString("0.65")
	n := p.Movements.Create(ctx, dto.CreateMovementRequest{ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 10, UnitPrice: &price})
	assert.Equal(t, "Movimiento registrado", n.Message)
	assert.Equal(t, 1, b.Count(http.MethodPost, "/inventory/movements"))

	b.On(http.MethodGet, "/products", []entity.Product{{ID: "p1", Stock: 15}})
	v := p.Products.View(ctx, "")
	require.Len(t, v.Items, 1)
	assert.Equal(t, 15, v.Items[0].Stock)
	assert.Equal(t, 2, b.Count(http.MethodGet, "/products"))
}

func TestSales_BuscaPorFacturaYCliente(t *testing.T) {
	p, b := setup()
	b.On(http.MethodGet, "/sales", []entity.Sale{
		{ID: "s1", InvoiceNumber: "F-0001", Customer: &entity.SaleCustomer{Name: "José Pérez"}},
		{ID: "s2", InvoiceNumber: "F-0002"},
	})
	ctx := as(entity.RoleCashier)

	assert.Equal(t, 1, p.Sales.View(ctx, "jose").Total)
	assert.Equal(t, 2, p.Sales.View(ctx, "f-000").Total)
}
