package entity

import "fmt"

// Role rol de usuario. Conjunto cerrado; la tabla de navegación es la fuente de verdad de los accesos.
type Role string

// Roles válidos para User.
const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleCashier    Role = "cashier"
)

// Roles devuelve todos los roles en orden de privilegio descendente.
func Roles() []Role {
	return []Role{RoleSuperadmin, RoleAdmin, RoleCashier}
}

// ParseRole valida un rol recibido del backend o de un formulario.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleSuperadmin, RoleAdmin, RoleCashier:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido: %q", s)
	}
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Label nombre visible del rol.
func (r Role) Label() string {
	switch r {
	case RoleSuperadmin:
		return "Super Administrador"
	case RoleAdmin:
		return "Administrador"
	case RoleCashier:
		return "Cajero"
	default:
		return string(r)
	}
}

// AssignableRoles roles que un usuario con rol current puede asignar al crear usuarios.
// superadmin -> admin, cashier; admin -> cashier; cashier -> ninguno.
func AssignableRoles(current Role) []Role {
	switch current {
	case RoleSuperadmin:
		return []Role{RoleAdmin, RoleCashier}
	case RoleAdmin:
		return []Role{RoleCashier}
	default:
		return nil
	}
}

// CanAssign indica si current puede asignar target.
func CanAssign(current, target Role) bool {
	for _, r := range AssignableRoles(current) {
		if r == target {
			return true
		}
	}
	return false
}
