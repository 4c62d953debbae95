package workorder_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportechiro/flota-api/internal/application/catalog"
	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memOrders struct {
	nextID      int64
	orders      map[int64]*entity.WorkOrder
	tasks       []*entity.OrderTask
	failAddTask error
}

func newMemOrders() *memOrders {
	return &memOrders{nextID: 1, orders: make(map[int64]*entity.WorkOrder)}
}

func (m *memOrders) Create(o *entity.WorkOrder) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *o
	cp.ID = id
	m.orders[id] = &cp
	return id, nil
}

func (m *memOrders) GetByID(id int64) (*entity.WorkOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) List(f repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for id := int64(1); id < m.nextID; id++ {
		o, ok := m.orders[id]
		if !ok {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrders) ListByDate(string, int) ([]*entity.WorkOrder, error) { return nil, nil }

func (m *memOrders) Update(o *entity.WorkOrder) error {
	if _, ok := m.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrders) Delete(id int64) error {
	if _, ok := m.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.orders, id)
	var keep []*entity.OrderTask
	for _, t := range m.tasks {
		if t.WorkOrderID != id {
			keep = append(keep, t)
		}
	}
	m.tasks = keep
	return nil
}

func (m *memOrders) AddTask(t *entity.OrderTask) error {
	if m.failAddTask != nil {
		return m.failAddTask
	}
	cp := *t
	cp.ID = int64(len(m.tasks) + 1)
	m.tasks = append(m.tasks, &cp)
	return nil
}

func (m *memOrders) ListTasks(orderID int64) ([]*entity.OrderTask, error) {
	var out []*entity.OrderTask
	for _, t := range m.tasks {
		if t.WorkOrderID == orderID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memRequests struct {
	nextID int64
	rows   map[int64]*entity.PartsRequest
}

func newMemRequests() *memRequests {
	return &memRequests{nextID: 1, rows: make(map[int64]*entity.PartsRequest)}
}

func (m *memRequests) Create(r *entity.PartsRequest) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *r
	cp.ID = id
	m.rows[id] = &cp
	return id, nil
}

func (m *memRequests) GetByID(id int64) (*entity.PartsRequest, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRequests) ListPending() ([]*entity.PartsRequest, error) {
	var out []*entity.PartsRequest
	for id := int64(1); id < m.nextID; id++ {
		if r, ok := m.rows[id]; ok && r.Status == entity.RequestPending {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRequests) ListByWorkOrder(orderID int64) ([]*entity.PartsRequest, error) {
	var out []*entity.PartsRequest
	for id := int64(1); id < m.nextID; id++ {
		if r, ok := m.rows[id]; ok && r.WorkOrderID == orderID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Resolve imita el UPDATE condicionado por estado: solo toca filas
// pendientes, que es la guarda contra doble aprobación.
func (m *memRequests) Resolve(id int64, status, resolvedBy string) error {
	r, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.Status != entity.RequestPending {
		return domain.ErrRequestResolved
	}
	r.Status = status
	r.ResolvedBy = resolvedBy
	return nil
}

type memStock struct {
	nextID int64
	items  map[int64]*entity.StockItem
}

func newMemStock() *memStock {
	return &memStock{nextID: 1, items: make(map[int64]*entity.StockItem)}
}

func (m *memStock) Create(item *entity.StockItem) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *item
	cp.ID = id
	m.items[id] = &cp
	return id, nil
}

func (m *memStock) GetByID(id int64) (*entity.StockItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memStock) GetForUpdate(id int64) (*entity.StockItem, error) { return m.GetByID(id) }

func (m *memStock) List() ([]*entity.StockItem, error) { return nil, nil }

func (m *memStock) Search(string) ([]*entity.StockItem, error) { return nil, nil }

func (m *memStock) Update(item *entity.StockItem) error {
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memStock) AdjustQuantity(id int64, delta int64) error {
	it, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity += delta
	return nil
}

func (m *memStock) Delete(id int64) error {
	delete(m.items, id)
	return nil
}

type memMovements struct {
	rows []*entity.StockMovement
}

func (m *memMovements) Create(mv *entity.StockMovement) (int64, error) {
	cp := *mv
	cp.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, &cp)
	return cp.ID, nil
}

func (m *memMovements) ListRecent(limit int) ([]*entity.StockMovement, error) { return nil, nil }

func (m *memMovements) ListByItem(int64, int) ([]*entity.StockMovement, error) { return nil, nil }

func (m *memMovements) ListByWorkOrder(orderID int64) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, r := range m.rows {
		if r.WorkOrderID != nil && *r.WorkOrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memVehicles struct {
	byID map[int64]*entity.Vehicle
}

func (m *memVehicles) Create(v *entity.Vehicle) (int64, error) { return v.ID, nil }
func (m *memVehicles) GetByID(id int64) (*entity.Vehicle, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}
func (m *memVehicles) GetByName(string) (*entity.Vehicle, error) { return nil, domain.ErrNotFound }
func (m *memVehicles) List() ([]*entity.Vehicle, error)          { return nil, nil }
func (m *memVehicles) Update(*entity.Vehicle) error              { return nil }
func (m *memVehicles) UpdateOdometer(id, km int64) error {
	v, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentKM = km
	return nil
}
func (m *memVehicles) Delete(int64) error { return nil }

type memDrivers struct {
	byID map[int64]*entity.Driver
}

func (m *memDrivers) Create(d *entity.Driver) (int64, error) { return d.ID, nil }
func (m *memDrivers) GetByID(id int64) (*entity.Driver, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}
func (m *memDrivers) List() ([]*entity.Driver, error) { return nil, nil }
func (m *memDrivers) Update(*entity.Driver) error     { return nil }
func (m *memDrivers) Delete(int64) error              { return nil }

type memSuppliers struct {
	nextID int64
	rows   map[int64]*entity.Supplier
}

func newMemSuppliers() *memSuppliers {
	return &memSuppliers{nextID: 1, rows: make(map[int64]*entity.Supplier)}
}

func (m *memSuppliers) Create(s *entity.Supplier) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *s
	cp.ID = id
	m.rows[id] = &cp
	return id, nil
}

func (m *memSuppliers) GetByID(id int64) (*entity.Supplier, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *memSuppliers) GetByCompany(company string) (*entity.Supplier, error) {
	for _, s := range m.rows {
		if s.Company == company {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSuppliers) List() ([]*entity.Supplier, error) { return nil, nil }
func (m *memSuppliers) Update(*entity.Supplier) error     { return nil }
func (m *memSuppliers) Delete(int64) error                { return nil }

// fakeTaskRepo catálogo mínimo para el resolvedor.
type fakeTaskRepo struct {
	nextID  int64
	tasks   map[int64]*entity.Task
	aliases map[string]int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: make(map[int64]*entity.Task), aliases: make(map[string]int64)}
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

// memTx imita la transacción real: clona el estado de los repositorios antes
// de correr y lo restaura si la función falla, así los tests verifican que
// una OT nunca queda escrita a medias.
type memTx struct {
	orders    *memOrders
	requests  *memRequests
	stock     *memStock
	movements *memMovements
	vehicles  *memVehicles
}

func (tx *memTx) Run(_ context.Context, fn func(
	orders repository.WorkOrderRepository,
	requests repository.PartsRequestRepository,
	stock repository.StockRepository,
	movements repository.MovementRepository,
	vehicles repository.VehicleRepository,
) error) error {
	ordersBackup := *tx.orders
	ordersBackup.orders = cloneMap(tx.orders.orders)
	ordersBackup.tasks = append([]*entity.OrderTask(nil), tx.orders.tasks...)
	requestsBackup := *tx.requests
	requestsBackup.rows = cloneMap(tx.requests.rows)
	stockBackup := *tx.stock
	stockBackup.items = cloneMap(tx.stock.items)
	movementsBackup := append([]*entity.StockMovement(nil), tx.movements.rows...)
	vehiclesBackup := cloneMap(tx.vehicles.byID)

	if err := fn(tx.orders, tx.requests, tx.stock, tx.movements, tx.vehicles); err != nil {
		*tx.orders = ordersBackup
		*tx.requests = requestsBackup
		*tx.stock = stockBackup
		tx.movements.rows = movementsBackup
		tx.vehicles.byID = vehiclesBackup
		return err
	}
	return nil
}

func cloneMap[T any](in map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(in))
	for k, v := range in {
		cp := *v
		out[k] = &cp
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *workorder.UseCase
	orders    *memOrders
	requests  *memRequests
	stock     *memStock
	movements *memMovements
	vehicles  *memVehicles
	suppliers *memSuppliers
}

func newFixture() *fixture {
	orders := newMemOrders()
	requests := newMemRequests()
	stock := newMemStock()
	movements := &memMovements{}
	vehicles := &memVehicles{byID: map[int64]*entity.Vehicle{
		1: {ID: 1, Name: "MB 1620", Plate: "AB123CD", CurrentKM: 50000},
	}}
	drivers := &memDrivers{byID: map[int64]*entity.Driver{
		1: {ID: 1, Name: "Carlos Gómez"},
	}}
	suppliers := newMemSuppliers()
	resolver := catalog.NewResolver(newFakeTaskRepo())
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	tx := &memTx{orders: orders, requests: requests, stock: stock, movements: movements, vehicles: vehicles}
	uc := workorder.NewUseCase(tx, orders, requests, stock, vehicles, drivers, suppliers, movements, resolver, log)
	return &fixture{
		uc: uc, orders: orders, requests: requests, stock: stock,
		movements: movements, vehicles: vehicles, suppliers: suppliers,
	}
}

func (f *fixture) seedItem(t *testing.T, name string, qty int64, unitPrice string) *entity.StockItem {
	t.Helper()
	item := &entity.StockItem{Name: name, Quantity: qty}
	if unitPrice != "" {
		item.UnitPrice = decimal.NullDecimal{Decimal: decimal.RequireFromString(unitPrice), Valid: true}
	}
	id, err := f.stock.Create(item)
	require.NoError(t, err)
	item.ID = id
	return item
}

func adminActor() workorder.Actor {
	return workorder.Actor{Username: "admin", Caps: workorder.CapabilitiesForRole(entity.RoleAdmin)}
}

func operatorActor() workorder.Actor {
	return workorder.Actor{Username: "pañolero", Caps: workorder.CapabilitiesForRole(entity.RoleOperator)}
}

func orderRequest(parts ...dto.OrderPartLine) dto.CreateWorkOrderRequest {
	return dto.CreateWorkOrderRequest{
		VehicleID:   1,
		Category:    "Mecánica General",
		Responsible: entity.ResponsibleMaxi,
		Tasks:       []string{"Cambio de aceite"},
		Parts:       parts,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

// El operario deja el pedido de repuestos como solicitud pendiente: el
// stock no se mueve hasta que alguien apruebe.
func TestCreate_OperarioDejaSolicitudPendiente(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")

	order, err := f.uc.Create(context.Background(), operatorActor(), orderRequest(
		dto.OrderPartLine{StockItemID: item.ID, Quantity: 4},
	))
	require.NoError(t, err)

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(10), after.Quantity, "el stock no se descuenta al crear")
	assert.Empty(t, f.movements.rows, "sin aprobación no hay asiento de kardex")

	reqs, err := f.uc.RequestsByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, entity.RequestPending, reqs[0].Status)
	assert.Equal(t, "pañolero", reqs[0].RequestedBy)
}

// El admin autoaprueba en el mismo acto: solicitud aprobada, stock
// descontado y salida asentada en la misma transacción.
func TestCreate_AdminAutoaprueba(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")

	order, err := f.uc.Create(context.Background(), adminActor(), orderRequest(
		dto.OrderPartLine{StockItemID: item.ID, Quantity: 4},
	))
	require.NoError(t, err)

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(6), after.Quantity)

	reqs, err := f.uc.RequestsByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, entity.RequestApproved, reqs[0].Status)
	assert.Equal(t, "admin", reqs[0].ResolvedBy)

	require.Len(t, f.movements.rows, 1)
	mv := f.movements.rows[0]
	assert.Equal(t, entity.MovementExit, mv.Type)
	assert.Equal(t, int64(4), mv.Quantity)
	assert.Equal(t, "MB 1620", mv.Destination)
	require.NotNil(t, mv.WorkOrderID)
	assert.Equal(t, order.ID, *mv.WorkOrderID)
}

// Si el alta de una tarea falla, la transacción revierte todo: no queda OT,
// ni tareas, ni solicitudes, y el odómetro vuelve a donde estaba.
func TestCreate_RollbackSiFallaUnaTarea(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	f.orders.failAddTask = errors.New("disco lleno")

	in := orderRequest(dto.OrderPartLine{StockItemID: item.ID, Quantity: 4})
	km := int64(51200)
	in.OdometerKM = &km

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	require.Error(t, err)

	assert.Empty(t, f.orders.orders, "la OT no debe quedar persistida")
	assert.Empty(t, f.orders.tasks)
	assert.Empty(t, f.requests.rows)
	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(10), after.Quantity)
	assert.Empty(t, f.movements.rows)
	v, _ := f.vehicles.GetByID(1)
	assert.Equal(t, int64(50000), v.CurrentKM, "el arrastre de odómetro también se revierte")
}

// Líneas que resuelven a la misma tarea canónica se colapsan en una sola.
func TestCreate_TareasEquivalentesColapsan(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.Tasks = []string{"Cambio de aceite", "CAMBIO DE ACEITE", "cambio   aceite."}

	order, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)

	tasks, err := f.orders.ListTasks(order.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Cambio de aceite", order.Description)
}

// Una OT sin tareas útiles no se crea.
func TestCreate_SinTareas(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.Tasks = []string{"", "   "}

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, domain.ErrEmptyTaskList)
	assert.Empty(t, f.orders.orders)
}

// El rubro es un conjunto cerrado: valores fuera de la lista se rechazan.
func TestCreate_RubroInvalido(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.Category = "Tapicería"

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Responsable "Taller Externo" exige un taller: texto libre, proveedor
// elegido o proveedor nuevo.
func TestCreate_TallerExternoSinProveedor(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.Responsible = entity.ResponsibleExternal

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, domain.ErrMissingWorkshop)
}

// Un proveedor nuevo tipeado en el acto se da de alta y queda como taller.
func TestCreate_TallerExternoConProveedorNuevo(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.Responsible = entity.ResponsibleExternal
	in.NewSupplier = "Gomería El Rápido"

	order, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)

	assert.Equal(t, "Gomería El Rápido", order.ExternalWorkshop)
	_, err = f.suppliers.GetByCompany("Gomería El Rápido")
	assert.NoError(t, err, "el proveedor nuevo debe quedar en el padrón")
}

// Con responsable interno, el taller externo que venga en el body se ignora.
func TestCreate_TallerSoloConResponsableExterno(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	in.ExternalWorkshop = "Taller Pérez"

	order, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)
	assert.Empty(t, order.ExternalWorkshop)
}

// Un pedido que ya se sabe incumplible se corta al crear, aunque el
// descuento sea diferido.
func TestCreate_PedidoSuperaStock(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")

	_, err := f.uc.Create(context.Background(), operatorActor(), orderRequest(
		dto.OrderPartLine{StockItemID: item.ID, Quantity: 15},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.orders.orders)
}

// El kilometraje de la OT no puede retroceder el odómetro del móvil.
func TestCreate_OdometroNoRetrocede(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	km := int64(49000) // el móvil está en 50000
	in.OdometerKM = &km

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	assert.ErrorIs(t, err, domain.ErrOdometerRollback)

	v, _ := f.vehicles.GetByID(1)
	assert.Equal(t, int64(50000), v.CurrentKM)
}

func TestCreate_OdometroAvanza(t *testing.T) {
	f := newFixture()
	in := orderRequest()
	km := int64(51200)
	in.OdometerKM = &km

	_, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)

	v, _ := f.vehicles.GetByID(1)
	assert.Equal(t, int64(51200), v.CurrentKM)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación diferida
// ──────────────────────────────────────────────────────────────────────────────

func pendingRequest(t *testing.T, f *fixture, itemID, qty int64) (*entity.WorkOrder, *entity.PartsRequest) {
	t.Helper()
	order, err := f.uc.Create(context.Background(), operatorActor(), orderRequest(
		dto.OrderPartLine{StockItemID: itemID, Quantity: qty},
	))
	require.NoError(t, err)
	reqs, err := f.uc.RequestsByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	return order, reqs[0]
}

// Aprobar descuenta el stock recién en ese momento y asienta la salida con
// referencia a la OT.
func TestApproveRequest(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	order, req := pendingRequest(t, f, item.ID, 4)

	require.NoError(t, f.uc.ApproveRequest(context.Background(), req.ID, "admin"))

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(6), after.Quantity)

	resolved, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, entity.RequestApproved, resolved.Status)
	assert.Equal(t, "admin", resolved.ResolvedBy)

	require.Len(t, f.movements.rows, 1)
	mv := f.movements.rows[0]
	assert.Equal(t, entity.MovementExit, mv.Type)
	assert.Equal(t, "MB 1620", mv.Destination)
	require.NotNil(t, mv.WorkOrderID)
	assert.Equal(t, order.ID, *mv.WorkOrderID)
}

// La segunda aprobación de la misma solicitud no pasa: el stock se mueve
// una sola vez.
func TestApproveRequest_DobleAprobacion(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	_, req := pendingRequest(t, f, item.ID, 4)

	require.NoError(t, f.uc.ApproveRequest(context.Background(), req.ID, "admin"))
	err := f.uc.ApproveRequest(context.Background(), req.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrRequestResolved)

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(6), after.Quantity, "el stock se descuenta una sola vez")
	assert.Len(t, f.movements.rows, 1)
}

// Si al aprobar ya no alcanza el stock, la solicitud queda pendiente y no
// se mueve nada: la validación del alta fue contra otro saldo.
func TestApproveRequest_StockYaNoAlcanza(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	_, req := pendingRequest(t, f, item.ID, 8)

	// Otra salida consumió el saldo entre el pedido y la aprobación.
	require.NoError(t, f.stock.AdjustQuantity(item.ID, -5))

	err := f.uc.ApproveRequest(context.Background(), req.ID, "admin")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(5), after.Quantity, "el saldo no se toca")
	still, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, entity.RequestPending, still.Status, "la solicitud sigue pendiente")
	assert.Empty(t, f.movements.rows)
}

// Rechazar resuelve la solicitud sin tocar stock ni kardex.
func TestRejectRequest(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	_, req := pendingRequest(t, f, item.ID, 4)

	require.NoError(t, f.uc.RejectRequest(context.Background(), req.ID, "admin"))

	after, _ := f.stock.GetByID(item.ID)
	assert.Equal(t, int64(10), after.Quantity)
	assert.Empty(t, f.movements.rows)

	resolved, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, entity.RequestRejected, resolved.Status)

	err := f.uc.ApproveRequest(context.Background(), req.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrRequestResolved, "una rechazada no se puede aprobar después")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre y baja
// ──────────────────────────────────────────────────────────────────────────────

// El costo final es terceros más los repuestos efectivamente entregados,
// valuados al precio del kardex.
func TestClose_CostoFinal(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1500")
	in := orderRequest(dto.OrderPartLine{StockItemID: item.ID, Quantity: 2})
	in.ThirdPartyCost = decimal.NewFromInt(20000)

	order, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)

	closed, err := f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{
		FinalNotes: "se cambió también la junta",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	// 20000 de terceros + 2 × 1500 de repuestos.
	assert.True(t, closed.TotalCost.Equal(decimal.NewFromInt(23000)),
		"costo total esperado 23000, obtenido %s", closed.TotalCost)
	assert.Contains(t, closed.Observations, "se cambió también la junta")
}

// El cierre acepta el costo de terceros definitivo, que pisa el estimado al
// crear: la factura del taller suele llegar recién al final.
func TestClose_CostoTercerosDefinitivo(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1500")
	in := orderRequest(dto.OrderPartLine{StockItemID: item.ID, Quantity: 2})
	in.ThirdPartyCost = decimal.NewFromInt(20000)

	order, err := f.uc.Create(context.Background(), adminActor(), in)
	require.NoError(t, err)

	final := decimal.NewFromInt(27500)
	closed, err := f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{
		ThirdPartyCost: &final,
	})
	require.NoError(t, err)

	assert.True(t, closed.ThirdPartyCost.Equal(final))
	// 27500 de terceros definitivos + 2 × 1500 de repuestos.
	assert.True(t, closed.TotalCost.Equal(decimal.NewFromInt(30500)),
		"costo total esperado 30500, obtenido %s", closed.TotalCost)
}

// Un costo de terceros negativo en el cierre se rechaza sin cerrar la OT.
func TestClose_CostoTercerosNegativo(t *testing.T) {
	f := newFixture()
	order, err := f.uc.Create(context.Background(), adminActor(), orderRequest())
	require.NoError(t, err)

	bad := decimal.NewFromInt(-1)
	_, err = f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{
		ThirdPartyCost: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, entity.OrderPending, stored.Status)
}

/// Las solicitudes pendientes no suman al costo: solo lo aprobado cuenta.
func TestClose_PendientesNoSuman(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1500")
	in := orderRequest(dto.OrderPartLine{StockItemID: item.ID, Quantity: 2})
	in.ThirdPartyCost = decimal.NewFromInt(20000)

	order, err := f.uc.Create(context.Background(), operatorActor(), in)
	require.NoError(t, err)

	closed, err := f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{})
	require.NoError(t, err)
	assert.True(t, closed.TotalCost.Equal(decimal.NewFromInt(20000)),
		"costo total esperado 20000, obtenido %s", closed.TotalCost)
}

// Una OT cerrada no se cierra dos veces ni admite cambios.
func TestClose_YaCerrada(t *testing.T) {
	f := newFixture()
	order, err := f.uc.Create(context.Background(), adminActor(), orderRequest())
	require.NoError(t, err)
	_, err = f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{})
	require.NoError(t, err)

	_, err = f.uc.Close(context.Background(), order.ID, adminActor(), dto.CloseWorkOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)

	notes := "cambio tardío"
	_, err = f.uc.Update(context.Background(), order.ID, adminActor(), dto.UpdateWorkOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

// Las transiciones de estado solo van hacia adelante.
func TestUpdate_SinReapertura(t *testing.T) {
	f := newFixture()
	order, err := f.uc.Create(context.Background(), adminActor(), orderRequest())
	require.NoError(t, err)

	proceso := entity.OrderInProcess
	_, err = f.uc.Update(context.Background(), order.ID, adminActor(), dto.UpdateWorkOrderRequest{Status: &proceso})
	require.NoError(t, err)

	pendiente := entity.OrderPending
	_, err = f.uc.Update(context.Background(), order.ID, adminActor(), dto.UpdateWorkOrderRequest{Status: &pendiente})
	assert.ErrorIs(t, err, domain.ErrConflict, "volver a Pendiente no está permitido")
}

// La baja es en dos pasos y devuelve el resumen de lo que se va a borrar.
func TestDelete_DosPasos(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	in := orderRequest(dto.OrderPartLine{StockItemID: item.ID, Quantity: 2})
	in.Tasks = []string{"Cambio de aceite", "Engrase general"}

	order, err := f.uc.Create(context.Background(), operatorActor(), in)
	require.NoError(t, err)

	summary, err := f.uc.Delete(context.Background(), order.ID, false)
	require.ErrorIs(t, err, domain.ErrConfirmationNeeded)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Tasks)
	assert.Equal(t, 1, summary.PartsRequests)
	_, err = f.orders.GetByID(order.ID)
	require.NoError(t, err, "sin confirmar, la OT sigue existiendo")

	_, err = f.uc.Delete(context.Background(), order.ID, true)
	require.NoError(t, err)
	_, err = f.orders.GetByID(order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El kardex sobrevive a la baja de la OT: el ledger es inmutable.
func TestDelete_KardexQueda(t *testing.T) {
	f := newFixture()
	item := f.seedItem(t, "Filtro de aceite", 10, "1000")
	order, err := f.uc.Create(context.Background(), adminActor(), orderRequest(
		dto.OrderPartLine{StockItemID: item.ID, Quantity: 4},
	))
	require.NoError(t, err)
	require.Len(t, f.movements.rows, 1)

	_, err = f.uc.Delete(context.Background(), order.ID, true)
	require.NoError(t, err)

	assert.Len(t, f.movements.rows, 1, "los asientos no se borran con la OT")
}
