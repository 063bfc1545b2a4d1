// Package pages arma las páginas de administración sobre crud.Controller:
// productos, categorías, clientes, usuarios y movimientos de inventario.
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

type (
	ProductPage  = crud.Controller[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	CategoryPage = crud.Controller[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
	CustomerPage = crud.Controller[entity.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
	UserPage     = crud.Controller[entity.User, dto.CreateUserRequest, dto.UpdateUserRequest]
	MovementPage = crud.Controller[entity.InventoryMovement, dto.CreateMovementRequest, struct{}]
	SalePage     = crud.Controller[entity.Sale, dto.CreateSaleRequest, struct{}]
)

// Services servicios de recursos que alimentan las páginas.
type Services struct {
	Products   *resource.ProductService
	Categories *resource.CategoryService
	Customers  *resource.CustomerService
	Users      *resource.UserService
	Inventory  *resource.InventoryService
	Sales      *resource.SaleService
}

// Pages controladores listos para los handlers HTTP.
type Pages struct {
	Products   *ProductPage
	Categories *CategoryPage
	Customers  *CustomerPage
	Users      *UserPage
	Movements  *MovementPage
	Sales      *SalePage
}

// New construye todas las páginas con un validator compartido.
func New(s Services, v *validator.Validate) *Pages {
	if v == nil {
		v = crud.NewValidator()
	}
	return &Pages{
		Products:   crud.New(s.Products, ProductSchema(), v),
		Categories: crud.New(s.Categories, CategorySchema(), v),
		Customers:  crud.New(s.Customers, CustomerSchema(), v),
		Users:      crud.New(s.Users, UserSchema(), v),
		Movements:  crud.New(s.Inventory, MovementSchema(), v),
		Sales:      crud.New(s.Sales, SaleSchema(), v),
	}
}

// ProductSchema página de productos. El stock no se edita: cambia con movimientos y ventas.
func ProductSchema() crud.Schema[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest] {
	return crud.Schema[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Title: "Productos",
		ID:    func(p entity.Product) string { return p.ID },
		SearchFields: func(p entity.Product) []string {
			return []string{p.Name, p.Description, p.SKU, p.CategoryName()}
		},
		Columns: []crud.Column{
			{Key: "name", Label: "Nombre"},
			{Key: "sku", Label: "SKU"},
			{Key: "category", Label: "Categoría"},
			{Key: "salePrice", Label: "Precio de venta"},
			{Key: "purchasePrice", Label: "Costo promedio"},
			{Key: "stock", Label: "Stock"},
		},
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre", Required: true},
			{Name: "description", Label: "Descripción", Type: "textarea"},
			{Name: "sku", Label: "SKU"},
			{Name: "purchasePrice", Label: "Precio de compra", Type: "number"},
			{Name: "salePrice", Label: "Precio de venta", Type: "number"},
			{Name: "stock", Label: "Stock inicial", Type: "number"},
			{Name: "categoryId", Label: "Categoría", Type: "select"},
			{Name: "isActive", Label: "Activo", Type: "checkbox"},
		},
		LockedFields: []string{"stock"},
		Messages: crud.Messages{
			Created:       "Producto creado exitosamente",
			Updated:       "Producto actualizado exitosamente",
			Deleted:       "Producto eliminado exitosamente",
			CreateFailed:  "Error al crear el producto",
			UpdateFailed:  "Error al actualizar el producto",
			DeleteFailed:  "Error al eliminar el producto",
			LoadFailed:    "Error al cargar productos",
			ConfirmDelete: func(any) string { return "¿Estás seguro de eliminar este producto?" },
		},
	}
}

// CategorySchema página de categorías.
func CategorySchema() crud.Schema[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest] {
	return crud.Schema[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
		Title:        "Categorías",
		ID:           func(c entity.Category) string { return c.ID },
		SearchFields: func(c entity.Category) []string { return []string{c.Name, c.Description} },
		Columns:      []crud.Column{{Key: "name", Label: "Nombre"}, {Key: "description", Label: "Descripción"}},
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre", Required: true},
			{Name: "description", Label: "Descripción", Type: "textarea"},
		},
		Messages: crud.Messages{
			Created:      "Categoría creada exitosamente",
			Updated:      "Categoría actualizada exitosamente",
			Deleted:      "Categoría eliminada exitosamente",
			CreateFailed: "Error al crear la categoría",
			UpdateFailed: "Error al actualizar la categoría",
			DeleteFailed: "Error al eliminar la categoría",
			LoadFailed:   "Error al cargar categorías",
			ConfirmDelete: func(item any) string {
				if c, ok := item.(entity.Category); ok {
					return fmt.Sprintf("¿Estás seguro de eliminar la categoría \"%s\"?", c.Name)
				}
				return "¿Estás seguro de eliminar esta categoría?"
			},
		},
	}
}

// CustomerSchema página de clientes.
func CustomerSchema() crud.Schema[entity.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest] {
	return crud.Schema[entity.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Title: "Clientes",
		ID:    func(c entity.Customer) string { return c.ID },
		SearchFields: func(c entity.Customer) []string {
			return []string{c.Name, c.DocumentNumber, c.Email, c.Phone}
		},
		Columns: []crud.Column{
			{Key: "documentNumber", Label: "Cédula/RUC"},
			{Key: "name", Label: "Nombre"},
			{Key: "phone", Label: "Teléfono"},
			{Key: "email", Label: "Email"},
		},
		Fields: []crud.Field{
			{Name: "documentNumber", Label: "Cédula/RUC", Required: true},
			{Name: "name", Label: "Nombre", Required: true},
			{Name: "phone", Label: "Teléfono"},
			{Name: "email", Label: "Email", Type: "email"},
			{Name: "address", Label: "Dirección"},
		},
		Messages: crud.Messages{
			Created:       "Cliente creado exitosamente",
			Updated:       "Cliente actualizado exitosamente",
			Deleted:       "Cliente eliminado exitosamente",
			CreateFailed:  "Error al crear el cliente",
			UpdateFailed:  "Error al actualizar el cliente",
			DeleteFailed:  "Error al eliminar el cliente",
			LoadFailed:    "Error al cargar clientes",
			ConfirmDelete: func(any) string { return "¿Estás seguro de eliminar este cliente?" },
		},
	}
}

// UserSchema página de usuarios. Los roles asignables dependen del rol de la sesión;
// solo se editan usuarios cuyo rol actual la sesión podría asignar y un superadmin
// no se modifica ni se desactiva desde aquí.
func UserSchema() crud.Schema[entity.User, dto.CreateUserRequest, dto.UpdateUserRequest] {
	return crud.Schema[entity.User, dto.CreateUserRequest, dto.UpdateUserRequest]{
		Title: "Usuarios",
		ID:    func(u entity.User) string { return u.ID },
		SearchFields: func(u entity.User) []string {
			return []string{u.FullName(), u.Email, u.Role.Label()}
		},
		Columns: []crud.Column{
			{Key: "name", Label: "Nombre"},
			{Key: "email", Label: "Email"},
			{Key: "role", Label: "Rol"},
			{Key: "isActive", Label: "Estado"},
		},
		Fields: []crud.Field{
			{Name: "firstName", Label: "Nombre", Required: true},
			{Name: "lastName", Label: "Apellido", Required: true},
			{Name: "email", Label: "Email", Type: "email", Required: true},
			{Name: "password", Label: "Contraseña", Type: "password", Required: true},
			{Name: "role", Label: "Rol", Type: "select"},
		},
		LockedFields: []string{"password"},
		CheckCreate: func(ctx context.Context, in dto.CreateUserRequest) []string {
			target := in.Role
			if target == "" {
				target = entity.RoleCashier
			}
			return checkRole(ctx, target)
		},
		CheckUpdate: func(ctx context.Context, cur entity.User, in dto.UpdateUserRequest) []string {
			sess, _ := session.FromContext(ctx)
			self := cur.ID != "" && cur.ID == sess.User.ID
			switch {
			case self:
				if in.Role != nil && *in.Role != cur.Role {
					return []string{"No puedes cambiar tu propio rol"}
				}
				return nil
			case cur.Role == entity.RoleSuperadmin:
				return []string{"No se puede modificar a un Super Administrador"}
			}
			// El usuario editado debe tener un rol que la sesión podría asignar.
			if msgs := checkRole(ctx, cur.Role); len(msgs) > 0 {
				return msgs
			}
			if in.Role == nil {
				return nil
			}
			return checkRole(ctx, *in.Role)
		},
		CheckDelete: func(_ context.Context, u entity.User) string {
			if u.Role == entity.RoleSuperadmin {
				return "No se puede desactivar a un Super Administrador"
			}
			return ""
		},
		Messages: crud.Messages{
			Created:       "Usuario creado exitosamente",
			Updated:       "Usuario actualizado exitosamente",
			Deleted:       "Usuario desactivado exitosamente",
			CreateFailed:  "Error al crear el usuario",
			UpdateFailed:  "Error al actualizar el usuario",
			DeleteFailed:  "Error al desactivar el usuario",
			LoadFailed:    "Error al cargar usuarios",
			ConfirmDelete: func(any) string { return "¿Estás seguro de que deseas desactivar este usuario?" },
		},
	}
}

func checkRole(ctx context.Context, target entity.Role) []string {
	current := session.Role(ctx)
	if entity.CanAssign(current, target) {
		return nil
	}
	allowed := entity.AssignableRoles(current)
	if len(allowed) == 0 {
		return []string{"No tienes permisos para crear o modificar usuarios"}
	}
	labels := make([]string, 0, len(allowed))
	for _, r := range allowed {
		labels = append(labels, r.Label())
	}
	return []string{fmt.Sprintf("Solo puedes asignar los roles: %s", strings.Join(labels, ", "))}
}

// RoleOptions roles que la sesión del contexto puede asignar, para el select del formulario.
func RoleOptions(ctx context.Context) []entity.Role {
	return entity.AssignableRoles(session.Role(ctx))
}

// MovementSchema página de movimientos de inventario. Solo alta; el stock y el
// costo promedio resultantes se leen del backend.
func MovementSchema() crud.Schema[entity.InventoryMovement, dto.CreateMovementRequest, struct{}] {
	return crud.Schema[entity.InventoryMovement, dto.CreateMovementRequest, struct{}]{
		Title: "Inventario",
		ID:    func(m entity.InventoryMovement) string { return m.ID },
		SearchFields: func(m entity.InventoryMovement) []string {
			return []string{m.ProductName(), string(m.Type), m.Reason}
		},
		Columns: []crud.Column{
			{Key: "createdAt", Label: "Fecha"},
			{Key: "product", Label: "Producto"},
			{Key: "type", Label: "Tipo"},
			{Key: "quantity", Label: "Cantidad"},
			{Key: "unitPrice", Label: "Precio unitario"},
			{Key: "reason", Label: "Motivo"},
		},
		Fields: []crud.Field{
			{Name: "productId", Label: "Producto", Type: "select", Required: true, Message: "Selecciona un producto"},
			{Name: "type", Label: "Tipo", Type: "select", Required: true},
			{Name: "quantity", Label: "Cantidad", Type: "number", Required: true},
			{Name: "unitPrice", Label: "Precio unitario", Type: "number"},
			{Name: "reason", Label: "Motivo"},
		},
		Messages: crud.Messages{
			Created:      "Movimiento registrado",
			CreateFailed: "Error al registrar movimiento",
			LoadFailed:   "Error al cargar movimientos",
		},
	}
}

// SaleSchema historial de ventas. Las ventas se crean desde el carrito de "Nueva factura".
func SaleSchema() crud.Schema[entity.Sale, dto.CreateSaleRequest, struct{}] {
	return crud.Schema[entity.Sale, dto.CreateSaleRequest, struct{}]{
		Title: "Ventas",
		ID:    func(s entity.Sale) string { return s.ID },
		SearchFields: func(s entity.Sale) []string {
			fields := []string{s.InvoiceNumber, s.Status, s.Notes}
			if s.Customer != nil {
				fields = append(fields, s.Customer.Name, s.Customer.DocumentNumber)
			}
			return fields
		},
		Columns: []crud.Column{
			{Key: "invoiceNumber", Label: "Factura"},
			{Key: "createdAt", Label: "Fecha"},
			{Key: "customer", Label: "Cliente"},
			{Key: "total", Label: "Total"},
			{Key: "status", Label: "Estado"},
		},
		Messages: crud.Messages{
			Created:      "Venta registrada exitosamente",
			CreateFailed: "Error al registrar la venta",
			LoadFailed:   "Error al cargar ventas",
		},
	}
}
