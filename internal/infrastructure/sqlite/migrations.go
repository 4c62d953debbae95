package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/transportechiro/flota-api/pkg/logger"
)

// migration es un paso de esquema versionado. Cada paso corre una sola vez,
// en orden, dentro de su propia transacción; schema_migrations lleva el
// registro de lo aplicado.
type migration struct {
	Version int
	Name    string
	Stmts   []string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "esquema inicial",
		Stmts: []string{
			`CREATE TABLE IF NOT EXISTS usuarios (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				username      TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				rol           TEXT NOT NULL,
				creado_en     TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS flota (
				id                INTEGER PRIMARY KEY AUTOINCREMENT,
				nombre            TEXT NOT NULL UNIQUE,
				patente           TEXT NOT NULL DEFAULT '',
				modelo            TEXT NOT NULL DEFAULT '',
				km_actual         INTEGER NOT NULL DEFAULT 0,
				km_ultimo_service INTEGER NOT NULL DEFAULT 0,
				intervalo_service INTEGER NOT NULL DEFAULT 0,
				km_actualizado    TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS choferes (
				id       INTEGER PRIMARY KEY AUTOINCREMENT,
				nombre   TEXT NOT NULL UNIQUE,
				dni      TEXT NOT NULL DEFAULT '',
				telefono TEXT NOT NULL DEFAULT '',
				estado   TEXT NOT NULL DEFAULT 'Activo'
			)`,
			`CREATE TABLE IF NOT EXISTS stock (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				codigo          TEXT NOT NULL DEFAULT '',
				nombre          TEXT NOT NULL,
				cantidad        INTEGER NOT NULL DEFAULT 0,
				minimo          INTEGER NOT NULL DEFAULT 0,
				precio_unitario TEXT,
				rubro           TEXT NOT NULL DEFAULT '',
				proveedor       TEXT NOT NULL DEFAULT '',
				recibido_en     TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS mantenimientos (
				id                 INTEGER PRIMARY KEY AUTOINCREMENT,
				fecha              TIMESTAMP NOT NULL,
				vehiculo_id        INTEGER NOT NULL REFERENCES flota(id),
				chofer_id          INTEGER REFERENCES choferes(id),
				descripcion        TEXT NOT NULL DEFAULT '',
				checklist          TEXT NOT NULL DEFAULT '{}',
				rubro              TEXT NOT NULL DEFAULT '',
				estado             TEXT NOT NULL DEFAULT 'Pendiente',
				costo_total        TEXT NOT NULL DEFAULT '0',
				costo_terceros     TEXT NOT NULL DEFAULT '0',
				responsable        TEXT NOT NULL DEFAULT '',
				taller_externo     TEXT NOT NULL DEFAULT '',
				repuestos_snapshot TEXT,
				observaciones      TEXT NOT NULL DEFAULT '',
				fecha_cierre       TIMESTAMP,
				creado_por         TEXT NOT NULL DEFAULT '',
				creado_en          TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS movimientos_stock (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				transaccion     TEXT NOT NULL DEFAULT '',
				stock_id        INTEGER REFERENCES stock(id) ON DELETE SET NULL,
				fecha           TIMESTAMP NOT NULL,
				tipo            TEXT NOT NULL,
				cantidad        INTEGER NOT NULL,
				precio_unitario TEXT,
				usuario         TEXT NOT NULL DEFAULT '',
				destino         TEXT NOT NULL DEFAULT '',
				proveedor       TEXT NOT NULL DEFAULT '',
				remito          TEXT NOT NULL DEFAULT '',
				ot_id           INTEGER REFERENCES mantenimientos(id) ON DELETE SET NULL
			)`,
			`CREATE TABLE IF NOT EXISTS combustible (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				fecha       TIMESTAMP NOT NULL,
				vehiculo_id INTEGER NOT NULL REFERENCES flota(id),
				chofer_id   INTEGER REFERENCES choferes(id),
				litros      TEXT NOT NULL DEFAULT '0',
				costo       TEXT NOT NULL DEFAULT '0',
				km          INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS proveedores (
				id        INTEGER PRIMARY KEY AUTOINCREMENT,
				empresa   TEXT NOT NULL UNIQUE,
				contacto  TEXT NOT NULL DEFAULT '',
				telefono  TEXT NOT NULL DEFAULT '',
				direccion TEXT NOT NULL DEFAULT '',
				rubro     TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS novedades (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				fecha       TIMESTAMP NOT NULL,
				vehiculo_id INTEGER NOT NULL REFERENCES flota(id),
				descripcion TEXT NOT NULL,
				estado      TEXT NOT NULL DEFAULT 'Activa'
			)`,
			`CREATE TABLE IF NOT EXISTS stock_cubiertas (
				id        INTEGER PRIMARY KEY AUTOINCREMENT,
				marca     TEXT NOT NULL DEFAULT '',
				modelo    TEXT NOT NULL DEFAULT '',
				medida    TEXT NOT NULL,
				dot       TEXT NOT NULL DEFAULT '',
				condicion TEXT NOT NULL DEFAULT 'Usada',
				cantidad  INTEGER NOT NULL DEFAULT 0,
				ubicacion TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS documentos (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				subido_en   TIMESTAMP NOT NULL,
				archivo     TEXT NOT NULL,
				descripcion TEXT NOT NULL DEFAULT '',
				tipo        TEXT NOT NULL DEFAULT '',
				ot_id       INTEGER NOT NULL DEFAULT 0
			)`,
		},
	},
	{
		Version: 2,
		Name:    "catálogo canónico de tareas",
		Stmts: []string{
			`CREATE TABLE IF NOT EXISTS tareas_catalogo (
				id     INTEGER PRIMARY KEY AUTOINCREMENT,
				nombre TEXT NOT NULL UNIQUE,
				activa INTEGER NOT NULL DEFAULT 1
			)`,
			`CREATE TABLE IF NOT EXISTS tareas_alias (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				normalizado TEXT NOT NULL UNIQUE,
				tarea_id    INTEGER NOT NULL REFERENCES tareas_catalogo(id)
			)`,
			`CREATE TABLE IF NOT EXISTS ot_tareas (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				ot_id          INTEGER NOT NULL REFERENCES mantenimientos(id) ON DELETE CASCADE,
				tarea_id       INTEGER NOT NULL REFERENCES tareas_catalogo(id),
				texto_original TEXT NOT NULL DEFAULT ''
			)`,
		},
	},
	{
		Version: 3,
		Name:    "solicitudes de repuestos diferidas",
		Stmts: []string{
			`CREATE TABLE IF NOT EXISTS solicitudes_repuestos (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				ot_id          INTEGER NOT NULL REFERENCES mantenimientos(id) ON DELETE CASCADE,
				stock_id       INTEGER NOT NULL REFERENCES stock(id),
				cantidad       INTEGER NOT NULL,
				estado         TEXT NOT NULL DEFAULT 'Pendiente',
				solicitado_por TEXT NOT NULL DEFAULT '',
				resuelto_por   TEXT NOT NULL DEFAULT '',
				resuelto_en    TIMESTAMP
			)`,
		},
	},
	{
		Version: 4,
		Name:    "índices de consulta",
		Stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_mantenimientos_vehiculo ON mantenimientos(vehiculo_id)`,
			`CREATE INDEX IF NOT EXISTS idx_mantenimientos_estado ON mantenimientos(estado)`,
			`CREATE INDEX IF NOT EXISTS idx_movimientos_stock_item ON movimientos_stock(stock_id)`,
			`CREATE INDEX IF NOT EXISTS idx_movimientos_stock_ot ON movimientos_stock(ot_id)`,
			`CREATE INDEX IF NOT EXISTS idx_solicitudes_estado ON solicitudes_repuestos(estado)`,
			`CREATE INDEX IF NOT EXISTS idx_combustible_vehiculo ON combustible(vehiculo_id)`,
		},
	},
}

// Migrate aplica los pasos pendientes. Es idempotente: un esquema al día no
// ejecuta nada. Reemplaza al viejo replay de ALTER TABLE en cada arranque.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		nombre     TEXT NOT NULL,
		aplicada_en TIMESTAMP NOT NULL
	)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("leer versión de esquema: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migración %d (%s): %w", m.Version, m.Name, err)
		}
		log.Info().Int("version", m.Version).Str("nombre", m.Name).Msg("migración aplicada")
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.Stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, nombre, aplicada_en) VALUES (?, ?, ?)`,
		m.Version, m.Name, time.Now(),
	); err != nil {
		return err
	}
	return tx.Commit()
}
