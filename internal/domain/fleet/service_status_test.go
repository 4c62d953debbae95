package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name          string
		currentKM     int64
		lastServiceKM int64
		intervalKM    int64
		wantState     State
	}{
		{"lejos del service", 10000, 0, 15000, StateOK},
		{"justo en el umbral", 14000, 0, 15000, StateDueSoon},
		{"a 500 km", 14500, 0, 15000, StateDueSoon},
		{"en el limite exacto", 15000, 0, 15000, StateOverdue},
		{"pasado de largo", 16000, 0, 15000, StateOverdue},
		{"service reciente", 21000, 20000, 15000, StateOK},
		{"sin intervalo configurado", 99999, 0, 0, StateOK},
		{"intervalo negativo", 99999, 0, -1, StateOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Evaluate(tc.currentKM, tc.lastServiceKM, tc.intervalKM)
			assert.Equal(t, tc.wantState, st.State)
		})
	}
}

func TestEvaluate_KMVencido(t *testing.T) {
	st := Evaluate(16000, 0, 15000)

	assert.Equal(t, StateOverdue, st.State)
	assert.Equal(t, int64(16000), st.KMSince)
	assert.Equal(t, int64(-1000), st.KMRemaining)
	assert.Equal(t, int64(1000), st.KMOverdue)
	assert.Equal(t, 100.0, st.Percent, "el porcentaje se acota a 100")
}

func TestEvaluate_KMRestantes(t *testing.T) {
	st := Evaluate(14500, 0, 15000)

	assert.Equal(t, StateDueSoon, st.State)
	assert.Equal(t, int64(500), st.KMRemaining)
	assert.Equal(t, int64(0), st.KMOverdue)
	assert.InDelta(t, 96.67, st.Percent, 0.01)
}

// Sin intervalo configurado no hay porcentaje ni alerta: evita dividir por
// cero y falsas alarmas en móviles sin plan de service.
func TestEvaluate_SinIntervalo(t *testing.T) {
	st := Evaluate(50000, 30000, 0)

	assert.Equal(t, StateOK, st.State)
	assert.Equal(t, int64(20000), st.KMSince)
	assert.Equal(t, int64(0), st.KMRemaining)
	assert.Equal(t, 0.0, st.Percent)
}

// Un último service cargado por delante del odómetro (corrección a medias)
// no produce porcentaje negativo.
func TestEvaluate_PorcentajeNoNegativo(t *testing.T) {
	st := Evaluate(10000, 12000, 15000)

	assert.Equal(t, 0.0, st.Percent)
	assert.Equal(t, int64(-2000), st.KMSince)
	assert.Equal(t, StateOK, st.State)
}
