package resource

import (
	"context"
	"net/url"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// ProductService productos; el stock y el costo promedio solo cambian vía movimientos y ventas.
type ProductService struct {
	*Collection[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
}

// NewProductService construye el servicio de productos.
func NewProductService(b Backend, c *query.Cache) *ProductService {
	return &ProductService{NewCollection[entity.Product, dto.CreateProductRequest, dto.UpdateProductRequest](b, c, Config{
		Name: Products, Path: "/products",
	})}
}

// ListByCategory listado de productos filtrado por categoría (vacía = todas).
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return s.List(ctx, url.Values{"category": {category}})
}

// CategoryService categorías. Sus escrituras también invalidan productos porque
// los productos embeben el nombre de su categoría.
type CategoryService = Collection[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]

// NewCategoryService construye el servicio de categorías.
func NewCategoryService(b Backend, c *query.Cache) *CategoryService {
	return NewCollection[entity.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest](b, c, Config{
		Name: Categories, Path: "/categories", Invalidates: []string{Categories, Products},
	})
}

// CustomerService clientes.
type CustomerService = Collection[entity.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]

// NewCustomerService construye el servicio de clientes.
func NewCustomerService(b Backend, c *query.Cache) *CustomerService {
	return NewCollection[entity.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest](b, c, Config{
		Name: Customers, Path: "/customers",
	})
}

// UserService usuarios. DELETE desactiva en el backend.
type UserService = Collection[entity.User, dto.CreateUserRequest, dto.UpdateUserRequest]

// NewUserService construye el servicio de usuarios.
func NewUserService(b Backend, c *query.Cache) *UserService {
	return NewCollection[entity.User, dto.CreateUserRequest, dto.UpdateUserRequest](b, c, Config{
		Name: Users, Path: "/users",
	})
}
