package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre SQLite: catálogo
// canónico de tareas y sus alias normalizados.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create da de alta una tarea canónica activa.
func (r *TaskRepo) Create(name string) (int64, error) {
	res, err := r.q.ExecContext(context.Background(),
		`INSERT INTO tareas_catalogo (nombre, activa) VALUES (?, 1)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert tarea: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene una tarea por id.
func (r *TaskRepo) GetByID(id int64) (*entity.Task, error) {
	var t entity.Task
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, nombre, activa FROM tareas_catalogo WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tarea: %w", err)
	}
	return &t, nil
}

// GetByNameFold busca por nombre exacto sin distinguir mayúsculas.
func (r *TaskRepo) GetByNameFold(name string) (*entity.Task, error) {
	var t entity.Task
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, nombre, activa FROM tareas_catalogo WHERE nombre = ? COLLATE NOCASE`, name,
	).Scan(&t.ID, &t.Name, &t.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tarea por nombre: %w", err)
	}
	return &t, nil
}

// ListActive devuelve las tareas activas en orden de id, el orden que usa el
// desempate de similitud.
func (r *TaskRepo) ListActive() ([]*entity.Task, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, nombre, activa FROM tareas_catalogo WHERE activa = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tareas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Active); err != nil {
			return nil, fmt.Errorf("scan tarea: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// GetAlias busca una forma normalizada ya registrada.
func (r *TaskRepo) GetAlias(normalized string) (*entity.TaskAlias, error) {
	var a entity.TaskAlias
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, normalizado, tarea_id FROM tareas_alias WHERE normalizado = ?`, normalized,
	).Scan(&a.ID, &a.Normalized, &a.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get alias: %w", err)
	}
	return &a, nil
}

// CreateAlias registra la forma normalizada. La unicidad de la columna es la
// guarda contra resoluciones concurrentes: la segunda recibe ErrDuplicate.
func (r *TaskRepo) CreateAlias(normalized string, taskID int64) error {
	_, err := r.q.ExecContext(context.Background(),
		`INSERT INTO tareas_alias (normalizado, tarea_id) VALUES (?, ?)`, normalized, taskID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}
