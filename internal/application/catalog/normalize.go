package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// La ñ es una letra propia del alfabeto, no una vocal con tilde: se
// resguarda con un marcador de uso privado antes de descomponer y quitar
// diacríticos, y se restituye después.
const enyeMark = "\uE000"

var enyeGuard = strings.NewReplacer("ñ", enyeMark, "Ñ", enyeMark)

// Normalize lleva un texto libre a su forma canónica de comparación:
// minúsculas, sin tildes (la ñ se conserva) y con todo separador no
// alfanumérico colapsado a un espacio simple. Dos textos que los usuarios
// escriben distinto pero significan lo mismo ("Cambio de Aceite",
// "cambio   aceite.") quedan a un paso de distancia de comparación difusa.
func Normalize(text string) string {
	// Componer primero, así una ñ descompuesta (n + U+0303) también se
	// resguarda.
	if composed, _, err := transform.String(norm.NFC, text); err == nil {
		text = composed
	}
	text = enyeGuard.Replace(text)

	out, _, err := transform.String(stripAccents, text)
	if err != nil {
		out = text
	}
	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, enyeMark, "ñ")

	var b strings.Builder
	b.Grow(len(out))
	space := false
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}
