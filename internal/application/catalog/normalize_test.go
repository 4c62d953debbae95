package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transportechiro/flota-api/internal/application/catalog"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"minusculas", "CAMBIO DE ACEITE", "cambio de aceite"},
		{"tildes", "Reparación de Portón", "reparacion de porton"},
		{"enie se conserva", "Engrase de muñones", "engrase de muñones"},
		{"enie mayuscula", "AÑO DE FABRICACIÓN", "año de fabricacion"},
		{"enie descompuesta", "mun\u0303ones", "muñones"},
		{"puntuacion colapsa", "cambio   aceite.", "cambio aceite"},
		{"separadores mixtos", "frenos - delanteros / traseros", "frenos delanteros traseros"},
		{"espacios al borde", "  luces  ", "luces"},
		{"numeros", "Service 10.000 km", "service 10 000 km"},
		{"solo puntuacion", "...---...", ""},
		{"vacio", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, catalog.Normalize(tc.in))
		})
	}
}

// La normalización es idempotente: normalizar dos veces no cambia nada.
func TestNormalize_Idempotente(t *testing.T) {
	in := "Cambio de Aceite y Filtros!!"
	once := catalog.Normalize(in)
	assert.Equal(t, once, catalog.Normalize(once))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, catalog.Similarity("cambio de aceite", "cambio de aceite"))

	// Variantes del mismo texto quedan por encima del umbral del resolvedor.
	alta := catalog.Similarity("cambio de aceite", "cambio aceite")
	assert.Greater(t, alta, 0.87)

	// Tareas distintas quedan lejos.
	baja := catalog.Similarity("cambio de aceite", "reparacion de porton")
	assert.Less(t, baja, 0.6)
}
