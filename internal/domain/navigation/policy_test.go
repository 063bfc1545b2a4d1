package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
)

func titles(items []navigation.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestVisibleItems_CajeroVeSoloLoPermitido(t *testing.T) {
	table, err := navigation.NewTable(
		navigation.Item{Title: "Nueva factura", Href: "/sales/new", AllowedRoles: []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleCashier}},
		navigation.Item{Title: "Categorías", Href: "/categories", AllowedRoles: []entity.Role{entity.RoleSuperadmin}},
		navigation.Item{Title: "Productos", Href: "/products", AllowedRoles: []entity.Role{entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleCashier}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nueva factura", "Productos"}, titles(table.VisibleItems(entity.RoleCashier)))
}

func TestVisibleItems_OrdenEIdempotencia(t *testing.T) {
	table := navigation.DefaultTable()
	for _, role := range entity.Roles() {
		first := table.VisibleItems(role)
		second := table.VisibleItems(role)
		assert.Equal(t, first, second, "llamadas repetidas deben devolver lo mismo para %s", role)

		// orden de declaración preservado y solo ítems permitidos
		all := table.Items()
		idx := 0
		for _, it := range first {
			assert.True(t, it.Allows(role))
			for idx < len(all) && all[idx].Href != it.Href {
				idx++
			}
			require.Less(t, idx, len(all), "ítem fuera de orden: %s", it.Href)
		}
	}
}

func TestVisibleItems_TablaPorDefecto(t *testing.T) {
	table := navigation.DefaultTable()

	assert.Equal(t,
		[]string{"Nueva factura", "Dashboard", "Productos", "Ventas", "Clientes"},
		titles(table.VisibleItems(entity.RoleCashier)))
	assert.NotContains(t, titles(table.VisibleItems(entity.RoleAdmin)), "Categorías")
	assert.Len(t, table.VisibleItems(entity.RoleSuperadmin), len(table.Items()))
	assert.Empty(t, table.VisibleItems(entity.Role("auditor")))
}

func TestVisibleItems_NoExponeEstadoInterno(t *testing.T) {
	table := navigation.DefaultTable()
	items := table.VisibleItems(entity.RoleCashier)
	items[0].Title = "modificado"

	assert.Equal(t, "Nueva factura", table.VisibleItems(entity.RoleCashier)[0].Title)
}

func TestNewTable_RechazaHrefDuplicadoORelativo(t *testing.T) {
	_, err := navigation.NewTable(
		navigation.Item{Title: "A", Href: "/a"},
		navigation.Item{Title: "B", Href: "/a"},
	)
	assert.Error(t, err)

	_, err = navigation.NewTable(navigation.Item{Title: "A", Href: "a"})
	assert.Error(t, err)
}

func TestAllows_PrefijoMasLargo(t *testing.T) {
	table := navigation.DefaultTable()

	assert.False(t, table.Allows(entity.RoleCashier, "/categories"))
	assert.False(t, table.Allows(entity.RoleCashier, "/categories/abc/edit"))
	assert.True(t, table.Allows(entity.RoleCashier, "/sales/new/items"))
	assert.True(t, table.Allows(entity.RoleCashier, "/sales/123/receipt.pdf"))
	assert.False(t, table.Allows(entity.RoleCashier, "/inventory/movements"))
	assert.True(t, table.Allows(entity.RoleCashier, "/navigation"), "rutas sin ítem quedan abiertas")

	_, governed := table.Governing("/categoriesx")
	assert.False(t, governed, "/categoriesx no está gobernada por /categories")
}
