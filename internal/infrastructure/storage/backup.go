package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/transportechiro/flota-api/pkg/logger"
)

// DailyBackup copia el archivo de base a backupDir una vez por día
// calendario: backup_YYYYMMDD_<nombre>. Si la copia de hoy ya existe no hace
// nada, así se puede llamar en cada arranque sin pisar nada.
func DailyBackup(dbPath, backupDir string, log *logger.Logger) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de backups: %w", err)
	}

	name := fmt.Sprintf("backup_%s_%s", time.Now().Format("20060102"), filepath.Base(dbPath))
	dest := filepath.Join(backupDir, name)
	if _, err := os.Stat(dest); err == nil {
		log.Debug().Str("archivo", dest).Msg("backup de hoy ya existe")
		return dest, nil
	}

	if err := copyFile(dbPath, dest); err != nil {
		return "", err
	}
	log.Info().Str("archivo", dest).Msg("backup diario creado")
	return dest, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("crear %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copiar a %s: %w", dest, err)
	}
	return out.Close()
}
