// Package navigation define la política estática rol -> destinos visibles.
// Es la única fuente de verdad de qué páginas puede abrir cada rol; la usan
// el menú lateral y el guard de página.
package navigation

import (
	"fmt"
	"strings"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// Variant estilo del ítem en el menú.
type Variant string

const (
	VariantDefault   Variant = "default"
	VariantHighlight Variant = "highlight"
)

// Item destino de navegación.
type Item struct {
	Title        string        `json:"title"`
	Icon         string        `json:"icon"`
	Href         string        `json:"href"`
	AllowedRoles []entity.Role `json:"allowedRoles"`
	Variant      Variant       `json:"variant,omitempty"`
}

// Allows indica si el rol puede ver el ítem.
func (it Item) Allows(role entity.Role) bool {
	for _, r := range it.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Table tabla inmutable de navegación en orden de declaración.
type Table struct {
	items []Item
}

// NewTable valida que cada href sea absoluto y único.
func NewTable(items ...Item) (*Table, error) {
	seen := make(map[string]struct{}, len(items))
	copied := make([]Item, 0, len(items))
	for _, it := range items {
		if !strings.HasPrefix(it.Href, "/") {
			return nil, fmt.Errorf("navigation: href no absoluto: %q", it.Href)
		}
		if _, dup := seen[it.Href]; dup {
			return nil, fmt.Errorf("navigation: href duplicado: %q", it.Href)
		}
		seen[it.Href] = struct{}{}
		if it.Variant == "" {
			it.Variant = VariantDefault
		}
		it.AllowedRoles = append([]entity.Role(nil), it.AllowedRoles...)
		copied = append(copied, it)
	}
	return &Table{items: copied}, nil
}

// MustTable igual que NewTable pero entra en pánico ante una tabla inválida (inicialización estática).
func MustTable(items ...Item) *Table {
	t, err := NewTable(items...)
	if err != nil {
		panic(err)
	}
	return t
}

// Items devuelve una copia de todos los ítems.
func (t *Table) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// VisibleItems ítems cuyo AllowedRoles contiene role, preservando el orden de declaración.
func (t *Table) VisibleItems(role entity.Role) []Item {
	out := make([]Item, 0, len(t.items))
	for _, it := range t.items {
		if it.Allows(role) {
			out = append(out, it)
		}
	}
	return out
}

// Governing devuelve el ítem cuyo href es el prefijo de ruta más largo de path.
// "/sales/new" gobierna "/sales/new" y "/sales" gobierna "/sales/123".
func (t *Table) Governing(path string) (Item, bool) {
	var best Item
	found := false
	for _, it := range t.items {
		if !matchesPrefix(path, it.Href) {
			continue
		}
		if !found || len(it.Href) > len(best.Href) {
			best, found = it, true
		}
	}
	return best, found
}

// Allows indica si role puede abrir path. Rutas que ningún ítem gobierna quedan
// abiertas a cualquier rol autenticado.
func (t *Table) Allows(role entity.Role, path string) bool {
	it, ok := t.Governing(path)
	if !ok {
		return true
	}
	return it.Allows(role)
}

func matchesPrefix(path, href string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

var all = []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleCashier}

// DefaultTable tabla de navegación de la aplicación.
func DefaultTable() *Table {
	return MustTable(
		Item{Title: "Nueva factura", Icon: "receipt", Href: "/sales/new", AllowedRoles: all, Variant: VariantHighlight},
		Item{Title: "Dashboard", Icon: "layout-dashboard", Href: "/dashboard", AllowedRoles: all},
		Item{Title: "Productos", Icon: "package", Href: "/products", AllowedRoles: all},
		Item{Title: "Inventario", Icon: "clipboard-list", Href: "/inventory", AllowedRoles: []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin}},
		Item{Title: "Ventas", Icon: "shopping-cart", Href: "/sales", AllowedRoles: all},
		Item{Title: "Clientes", Icon: "contact", Href: "/customers", AllowedRoles: all},
		Item{Title: "Reportes", Icon: "file-text", Href: "/reports", AllowedRoles: []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin}},
		Item{Title: "Usuarios", Icon: "users", Href: "/users", AllowedRoles: []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin}},
		Item{Title: "Categorías", Icon: "tag", Href: "/categories", AllowedRoles: []entity.Role{entity.RoleSuperadmin}},
	)
}
