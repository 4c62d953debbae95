package catalog

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// fuzzyThreshold es el parecido mínimo para considerar que dos tareas son la
// misma. Por debajo, el texto pasa a ser una tarea nueva del catálogo.
const fuzzyThreshold = 0.87

// Resolution es el resultado de resolver un texto libre contra el catálogo.
type Resolution struct {
	TaskID  int64
	Name    string // forma canónica
	Created bool   // true si el texto dio de alta una tarea nueva
}

// Resolver deduplica tareas tipeadas a mano contra el catálogo canónico.
// Cada forma normalizada que se resuelve queda registrada como alias, así la
// próxima vez el mismo texto resuelve en un solo lookup.
type Resolver struct {
	tasks repository.TaskRepository
}

// NewResolver construye el resolvedor sobre el catálogo.
func NewResolver(tasks repository.TaskRepository) *Resolver {
	return &Resolver{tasks: tasks}
}

// TaskName devuelve la forma canónica de una tarea del catálogo.
func (r *Resolver) TaskName(id int64) (string, error) {
	task, err := r.tasks.GetByID(id)
	if err != nil {
		return "", err
	}
	return task.Name, nil
}

// Resolve lleva un texto libre a su tarea canónica:
//
//  1. normaliza el texto; vacío es entrada inválida,
//  2. busca la forma normalizada en los alias ya registrados,
//  3. busca coincidencia exacta de nombre en el catálogo,
//  4. compara contra cada tarea activa con similitud difusa y toma la mejor
//     por encima del umbral (a igual parecido gana el id más bajo),
//  5. si nada alcanza, da de alta una tarea nueva con el texto original.
//
// Resolver el mismo texto dos veces devuelve siempre el mismo id.
func (r *Resolver) Resolve(raw string) (*Resolution, error) {
	raw = strings.TrimSpace(raw)
	normalized := Normalize(raw)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}

	if alias, err := r.tasks.GetAlias(normalized); err == nil {
		return r.resolved(alias.TaskID, false)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	if task, err := r.tasks.GetByNameFold(raw); err == nil {
		return r.remember(normalized, task.ID, false)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	active, err := r.tasks.ListActive()
	if err != nil {
		return nil, err
	}
	if best := closestTask(normalized, active); best != nil {
		return r.remember(normalized, best.ID, false)
	}

	id, err := r.tasks.Create(raw)
	if err != nil {
		return nil, err
	}
	return r.remember(normalized, id, true)
}

// closestTask devuelve la tarea activa más parecida al texto normalizado, o
// nil si ninguna supera el umbral. El recorrido es en orden de id, y solo un
// parecido estrictamente mayor desplaza al mejor: empates resuelven al id
// más bajo, así el resultado no depende del orden de inserción.
func closestTask(normalized string, tasks []*entity.Task) *entity.Task {
	var best *entity.Task
	bestRatio := 0.0
	for _, t := range tasks {
		ratio := Similarity(normalized, Normalize(t.Name))
		if ratio >= fuzzyThreshold && ratio > bestRatio {
			best = t
			bestRatio = ratio
		}
	}
	return best
}

// Similarity calcula el parecido entre dos textos como ratio de
// SequenceMatcher sobre caracteres, en [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// remember registra el alias y devuelve la resolución. Si otra resolución
// concurrente registró el mismo alias primero, vale la de ella.
func (r *Resolver) remember(normalized string, taskID int64, created bool) (*Resolution, error) {
	if err := r.tasks.CreateAlias(normalized, taskID); err != nil {
		if err != domain.ErrDuplicate {
			return nil, err
		}
		alias, err := r.tasks.GetAlias(normalized)
		if err != nil {
			return nil, err
		}
		return r.resolved(alias.TaskID, false)
	}
	return r.resolved(taskID, created)
}

func (r *Resolver) resolved(taskID int64, created bool) (*Resolution, error) {
	task, err := r.tasks.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	return &Resolution{TaskID: task.ID, Name: task.Name, Created: created}, nil
}
