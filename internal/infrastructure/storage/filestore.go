package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/transportechiro/flota-api/internal/application/usecase"
	"github.com/transportechiro/flota-api/internal/domain"
)

var _ usecase.FileStore = (*FileStore)(nil)

// FileStore guarda los adjuntos de OTs en un directorio plano del disco.
// El nombre guardado lleva la OT y un timestamp para que dos subidas del
// mismo archivo nunca colisionen: DOC_<otID>_<unix>_<nombre original>.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de adjuntos: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save persiste el archivo y devuelve el nombre con el que quedó guardado.
func (s *FileStore) Save(orderID int64, originalName string, data []byte) (string, error) {
	stored := fmt.Sprintf("DOC_%d_%d_%s", orderID, time.Now().Unix(), sanitizeName(originalName))
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar adjunto: %w", err)
	}
	return stored, nil
}

// Path devuelve la ruta en disco de un archivo ya guardado. Rechaza nombres
// con separadores: el nombre guardado nunca los tiene, y un path traversal
// desde la URL tampoco debe tenerlos.
func (s *FileStore) Path(storedName string) (string, error) {
	if storedName == "" || storedName != filepath.Base(storedName) {
		return "", domain.ErrInvalidInput
	}
	path := filepath.Join(s.dir, storedName)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrNotFound
	}
	return path, nil
}

// sanitizeName reduce el nombre original a algo seguro para el filesystem.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "archivo"
	}
	return b.String()
}
