// Package logger envuelve zerolog con la configuración de la aplicación:
// consola legible en desarrollo, JSON en el servidor.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config define entorno y nivel mínimo de log.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro, JSON
	Level string // trace, debug, info, warn, error
}

// Logger es el logger estructurado que se inyecta en los casos de uso.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según la configuración y lo deja también como
// logger global de zerolog, para librerías que escriban por esa vía.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	zl := zerolog.New(w).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel traduce el nivel de texto de la configuración. Un valor
// desconocido o vacío cae en info, nunca en silencio total.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos, por ejemplo el módulo que loguea.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno para middlewares que piden la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
