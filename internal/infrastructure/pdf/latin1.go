package pdf

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// latin1 baja el texto a lo representable en ISO-8859-1, que es lo que
// soportan las fuentes base de PDF. Los caracteres sin equivalente se
// reemplazan en lugar de romper la generación.
func latin1(s string) string {
	out, _, err := transform.String(charmap.ISO8859_1.NewEncoder().Transformer, s)
	if err != nil {
		var b []byte
		for _, r := range s {
			if r < 256 {
				b = append(b, byte(r))
			} else {
				b = append(b, '?')
			}
		}
		return string(b)
	}
	dec, _, err := transform.String(charmap.ISO8859_1.NewDecoder().Transformer, out)
	if err != nil {
		return s
	}
	return dec
}
