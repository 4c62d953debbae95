package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// TaskRepository puerto del catálogo canónico de tareas y sus alias.
type TaskRepository interface {
	Create(name string) (int64, error)
	GetByID(id int64) (*entity.Task, error)
	// GetByNameFold busca por nombre exacto sin distinguir mayúsculas.
	GetByNameFold(name string) (*entity.Task, error)
	ListActive() ([]*entity.Task, error)

	GetAlias(normalized string) (*entity.TaskAlias, error)
	// CreateAlias registra la forma normalizada; devuelve ErrDuplicate si
	// otra resolución concurrente ganó la carrera.
	CreateAlias(normalized string, taskID int64) error
}
