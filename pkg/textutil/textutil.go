// Package textutil normaliza texto para búsquedas insensibles a tildes y mayúsculas,
// típico en catálogos con nombres en español ("Batería" debe coincidir con "bateria").
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve s en minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Entrada no normalizable: se degrada a lowercase simple.
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ContainsFold reporta si s contiene substr comparando en forma normalizada.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
