package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/infrastructure/storage"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// BackupHandler expone el backup diario de la base. Solo-admin.
type BackupHandler struct {
	dbPath    string
	backupDir string
	log       *logger.Logger
}

// NewBackupHandler construye el handler.
func NewBackupHandler(dbPath, backupDir string, log *logger.Logger) *BackupHandler {
	return &BackupHandler{dbPath: dbPath, backupDir: backupDir, log: log}
}

// Run godoc
// @Summary      Asegurar el backup del día (solo admin)
// @Description  Idempotente: si el backup de hoy ya existe no crea otro.
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/backup [post]
func (h *BackupHandler) Run(c *fiber.Ctx) error {
	path, err := storage.DailyBackup(h.dbPath, h.backupDir, h.log)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "BACKUP_FAILED", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"archivo": filepath.Base(path)})
}

// Download godoc
// @Summary      Descargar el backup del día (solo admin)
// @Tags         backup
// @Security     Bearer
// @Produce      application/octet-stream
// @Success      200  {file}  binary
// @Router       /api/backup/download [get]
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	path, err := storage.DailyBackup(h.dbPath, h.backupDir, h.log)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "BACKUP_FAILED", Message: err.Error()})
	}
	return c.Download(path, filepath.Base(path))
}
