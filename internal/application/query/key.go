package query

import (
	"net/url"
	"strings"
)

// Key identifica una lectura cacheada: sesión, recurso y parámetros de filtro.
type Key struct {
	Scope    string
	Resource string
	Params   string // parámetros canónicos (orden alfabético, sin valores vacíos)
}

// NewKey construye una clave normalizando los parámetros. Los parámetros vacíos
// se descartan igual que cuando no se envían al backend.
func NewKey(scope, resource string, params url.Values) Key {
	return Key{Scope: scope, Resource: resource, Params: Canonical(params)}
}

// Canonical serializa params en orden estable omitiendo valores vacíos.
func Canonical(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	clean := make(url.Values, len(params))
	for k, vs := range params {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	return clean.Encode()
}

// String representación estable de la clave (no contiene el token).
func (k Key) String() string {
	return k.Scope + "|" + k.Resource + "|" + k.Params
}
