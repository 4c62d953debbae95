package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportechiro/flota-api/internal/application/catalog"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
)

// fakeTaskRepo es un catálogo en memoria con la misma semántica que el
// repositorio SQLite: alias únicos por forma normalizada y búsqueda por
// nombre sin distinguir mayúsculas.
type fakeTaskRepo struct {
	nextID  int64
	tasks   map[int64]*entity.Task
	aliases map[string]int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		nextID:  1,
		tasks:   make(map[int64]*entity.Task),
		aliases: make(map[string]int64),
	}
}

func (f *fakeTaskRepo) Create(name string) (int64, error) {
	id := f.nextID
	f.nextID++
	f.tasks[id] = &entity.Task{ID: id, Name: name, Active: true}
	return id, nil
}

func (f *fakeTaskRepo) GetByID(id int64) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) GetByNameFold(name string) (*entity.Task, error) {
	for _, t := range f.tasks {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTaskRepo) ListActive() ([]*entity.Task, error) {
	var out []*entity.Task
	for id := int64(1); id < f.nextID; id++ {
		if t, ok := f.tasks[id]; ok && t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetAlias(normalized string) (*entity.TaskAlias, error) {
	taskID, ok := f.aliases[normalized]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.TaskAlias{Normalized: normalized, TaskID: taskID}, nil
}

func (f *fakeTaskRepo) CreateAlias(normalized string, taskID int64) error {
	if _, ok := f.aliases[normalized]; ok {
		return domain.ErrDuplicate
	}
	f.aliases[normalized] = taskID
	return nil
}

// Texto nuevo da de alta una tarea con el texto original como nombre.
func TestResolve_TextoNuevoCreaTarea(t *testing.T) {
	repo := newFakeTaskRepo()
	r := catalog.NewResolver(repo)

	res, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "Cambio de Aceite", res.Name)
	assert.Len(t, repo.tasks, 1)
}

// Resolver el mismo texto dos veces devuelve siempre el mismo id.
func TestResolve_Idempotente(t *testing.T) {
	repo := newFakeTaskRepo()
	r := catalog.NewResolver(repo)

	first, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)
	second, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)

	assert.Equal(t, first.TaskID, second.TaskID)
	assert.False(t, second.Created, "la segunda resolución no debe crear nada")
	assert.Len(t, repo.tasks, 1)
}

// Variantes tipeadas del mismo texto resuelven a la misma tarea canónica.
func TestResolve_VariantesResuelvenALaMismaTarea(t *testing.T) {
	repo := newFakeTaskRepo()
	r := catalog.NewResolver(repo)

	canon, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)

	for _, variant := range []string{
		"cambio de aceite",
		"CAMBIO DE ACEITE",
		"cambio   aceite.",
		"Cambio de aceite!!",
	} {
		res, err := r.Resolve(variant)
		require.NoError(t, err, variant)
		assert.Equal(t, canon.TaskID, res.TaskID, variant)
		assert.Equal(t, "Cambio de Aceite", res.Name, variant)
	}
	assert.Len(t, repo.tasks, 1, "ninguna variante debe duplicar el catálogo")
}

// Texto que no se parece a nada existente crea una tarea nueva.
func TestResolve_TextoDistintoCreaTareaNueva(t *testing.T) {
	repo := newFakeTaskRepo()
	r := catalog.NewResolver(repo)

	aceite, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)
	porton, err := r.Resolve("Reparación de Portón")
	require.NoError(t, err)

	assert.NotEqual(t, aceite.TaskID, porton.TaskID)
	assert.True(t, porton.Created)
	assert.Len(t, repo.tasks, 2)
}

// La primera resolución deja el alias registrado: la siguiente vez el mismo
// texto resuelve sin pasar por la comparación difusa.
func TestResolve_RegistraAlias(t *testing.T) {
	repo := newFakeTaskRepo()
	r := catalog.NewResolver(repo)

	res, err := r.Resolve("cambio   aceite.")
	require.NoError(t, err)

	alias, err := repo.GetAlias("cambio aceite")
	require.NoError(t, err)
	assert.Equal(t, res.TaskID, alias.TaskID)
}

// A igual parecido gana el id más bajo: el resultado no depende del orden
// de inserción del catálogo.
func TestResolve_EmpateGanaIDMasBajo(t *testing.T) {
	repo := newFakeTaskRepo()
	id1, err := repo.Create("cambio de aceites")
	require.NoError(t, err)
	_, err = repo.Create("cambio de aceitex")
	require.NoError(t, err)

	r := catalog.NewResolver(repo)
	res, err := r.Resolve("cambio de aceitez")
	require.NoError(t, err)

	assert.Equal(t, id1, res.TaskID)
	assert.False(t, res.Created)
}

// Texto vacío o solo puntuación es entrada inválida.
func TestResolve_TextoVacio(t *testing.T) {
	r := catalog.NewResolver(newFakeTaskRepo())

	for _, in := range []string{"", "   ", "...", "-- --"} {
		_, err := r.Resolve(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%q", in)
	}
}

// racingTaskRepo simula una resolución concurrente: el primer GetAlias
// falla como si el alias todavía no existiera, pero CreateAlias lo
// encuentra ya registrado.
type racingTaskRepo struct {
	*fakeTaskRepo
	missFirst bool
}

func (r *racingTaskRepo) GetAlias(normalized string) (*entity.TaskAlias, error) {
	if r.missFirst {
		r.missFirst = false
		return nil, domain.ErrNotFound
	}
	return r.fakeTaskRepo.GetAlias(normalized)
}

// Si otra resolución concurrente ganó la carrera del alias, vale la de ella.
func TestResolve_CarreraDeAliasUsaElExistente(t *testing.T) {
	base := newFakeTaskRepo()
	r := catalog.NewResolver(base)
	winner, err := r.Resolve("Cambio de Aceite")
	require.NoError(t, err)

	racing := &racingTaskRepo{fakeTaskRepo: base, missFirst: true}
	res, err := catalog.NewResolver(racing).Resolve("cambio de aceite")
	require.NoError(t, err)

	assert.Equal(t, winner.TaskID, res.TaskID)
	assert.False(t, res.Created)
}
