package entity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Session identidad autenticada del cliente: token bearer + usuario.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Scope identificador opaco y estable derivado del token para aislar cachés por sesión.
// El token nunca se usa directamente como clave ni aparece en logs.
func (s Session) Scope() string {
	if s.Token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:8])
}
