package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/transportechiro/flota-api/pkg/config"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// Open abre (o crea) el archivo SQLite con los pragmas de operación:
// claves foráneas activas, WAL para lecturas concurrentes y busy_timeout
// para que las escrituras esperen en lugar de fallar con "database is locked".
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base %s: %w", path, err)
	}
	// SQLite serializa las escrituras: más de una conexión solo suma
	// contención y errores de lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping base %s: %w", path, err)
	}
	return db, nil
}

// Discover elige el archivo de base de datos a usar. Busca candidatos que
// matcheen el patrón en el directorio de trabajo y en el de backups, y se
// queda con el que más órdenes de trabajo tiene: ante copias sueltas del
// archivo, gana la que realmente se estuvo usando.
func Discover(ctx context.Context, cfg config.DBConfig, log *logger.Logger) string {
	candidates, _ := filepath.Glob(cfg.Pattern)
	if more, err := filepath.Glob(filepath.Join(cfg.BackupDir, "*"+filepath.Base(cfg.Path))); err == nil {
		candidates = append(candidates, more...)
	}

	best := cfg.Path
	bestCount := int64(-1)
	for _, path := range candidates {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		count, err := countOrders(ctx, path)
		if err != nil {
			log.Warn().Str("archivo", path).Err(err).Msg("candidato de base ilegible, se ignora")
			continue
		}
		if count > bestCount {
			best = path
			bestCount = count
		}
	}

	if bestCount >= 0 {
		log.Info().Str("archivo", best).Int64("ots", bestCount).Msg("base de datos elegida")
	} else {
		log.Info().Str("archivo", best).Msg("sin bases existentes; se crea una nueva")
	}
	return best
}

// countOrders cuenta las OTs de un archivo candidato. Archivos sin la tabla
// (bases vacías o ajenas) devuelven error y quedan fuera de la elección.
func countOrders(ctx context.Context, path string) (int64, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int64
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mantenimientos`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
