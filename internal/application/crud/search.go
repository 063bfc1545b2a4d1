package crud

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pliega mayúsculas y quita tildes: "Categoría" -> "categoria".
// Los transformers de x/text guardan estado, por eso se crean en cada llamada.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Matches indica si term aparece en alguno de los campos (sin distinguir mayúsculas ni tildes).
// Un término vacío coincide con todo.
func Matches(term string, fields ...string) bool {
	needle := Normalize(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), needle) {
			return true
		}
	}
	return false
}
