// Package fleet contiene la aritmética de intervalos de service de la flota.
package fleet

// State clasifica la situación de service de un móvil.
type State string

const (
	StateOK      State = "ok"
	StateDueSoon State = "proximo"
	StateOverdue State = "vencido"
)

// dueSoonThresholdKM: a cuántos km del vencimiento se considera "próximo".
const dueSoonThresholdKM = 1000

// ServiceStatus es el resultado de evaluar el kilometraje de un móvil
// contra su intervalo de service.
type ServiceStatus struct {
	State       State
	KMSince     int64 // km recorridos desde el último service
	KMRemaining int64 // km hasta el próximo service (negativo si vencido)
	KMOverdue   int64 // km de exceso cuando está vencido
	Percent     float64
}

// Evaluate calcula el estado de service. Un intervalo menor o igual a cero
// significa "sin intervalo configurado": porcentaje 0 y estado OK, para no
// dividir por cero ni generar falsas alertas.
func Evaluate(currentKM, lastServiceKM, intervalKM int64) ServiceStatus {
	since := currentKM - lastServiceKM

	if intervalKM <= 0 {
		return ServiceStatus{State: StateOK, KMSince: since}
	}

	remaining := intervalKM - since
	pct := float64(since) / float64(intervalKM) * 100
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	st := ServiceStatus{
		KMSince:     since,
		KMRemaining: remaining,
		Percent:     pct,
	}
	switch {
	case since >= intervalKM:
		st.State = StateOverdue
		st.KMOverdue = since - intervalKM
	case remaining <= dueSoonThresholdKM:
		st.State = StateDueSoon
	default:
		st.State = StateOK
	}
	return st
}
