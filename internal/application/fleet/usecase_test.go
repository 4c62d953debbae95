package fleet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	domfleet "github.com/transportechiro/flota-api/internal/domain/fleet"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memVehicles struct {
	nextID       int64
	byID         map[int64]*entity.Vehicle
	failOdometer error
}

func newMemVehicles() *memVehicles {
	return &memVehicles{nextID: 1, byID: make(map[int64]*entity.Vehicle)}
}

func (m *memVehicles) Create(v *entity.Vehicle) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *v
	cp.ID = id
	m.byID[id] = &cp
	return id, nil
}

func (m *memVehicles) GetByID(id int64) (*entity.Vehicle, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVehicles) GetByName(name string) (*entity.Vehicle, error) {
	for _, v := range m.byID {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memVehicles) List() ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for id := int64(1); id < m.nextID; id++ {
		if v, ok := m.byID[id]; ok {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memVehicles) Update(v *entity.Vehicle) error {
	if _, ok := m.byID[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	m.byID[v.ID] = &cp
	return nil
}

func (m *memVehicles) UpdateOdometer(id, km int64) error {
	if m.failOdometer != nil {
		return m.failOdometer
	}
	v, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentKM = km
	return nil
}

func (m *memVehicles) Delete(id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memFuel struct {
	rows []*entity.FuelLog
}

func (m *memFuel) Create(f *entity.FuelLog) (int64, error) {
	cp := *f
	cp.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, &cp)
	return cp.ID, nil
}

func (m *memFuel) List(limit int) ([]*entity.FuelLog, error) {
	out := make([]*entity.FuelLog, 0, limit)
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *memFuel) ListByVehicle(vehicleID int64, limit int) ([]*entity.FuelLog, error) {
	var out []*entity.FuelLog
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if m.rows[i].VehicleID == vehicleID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memFuel) ConsumptionRanking() ([]*repository.DriverConsumption, error) { return nil, nil }

// memTx imita la transacción real: clona el estado antes de ejecutar fn y lo
// restituye si fn falla, para poder verificar el rollback.
type memTx struct {
	vehicles *memVehicles
	fuel     *memFuel
}

func (tx *memTx) Run(ctx context.Context, fn func(
	fuel repository.FuelRepository,
	vehicles repository.VehicleRepository,
) error) error {
	vehicleSnap := make(map[int64]*entity.Vehicle, len(tx.vehicles.byID))
	for id, v := range tx.vehicles.byID {
		cp := *v
		vehicleSnap[id] = &cp
	}
	fuelSnap := make([]*entity.FuelLog, len(tx.fuel.rows))
	copy(fuelSnap, tx.fuel.rows)

	if err := fn(tx.fuel, tx.vehicles); err != nil {
		tx.vehicles.byID = vehicleSnap
		tx.fuel.rows = fuelSnap
		return err
	}
	return nil
}

// stubAnalytics devuelve agregados fijos para el cálculo de CPK.
type stubAnalytics struct {
	maint []*repository.VehicleCost
	fuel  []*repository.VehicleFuel
}

func (s *stubAnalytics) CountOrdersByStatus() (map[string]int64, error)  { return nil, nil }
func (s *stubAnalytics) CostByCategory() ([]*repository.CategoryCost, error) { return nil, nil }
func (s *stubAnalytics) CostByVehicle() ([]*repository.VehicleCost, error)   { return s.maint, nil }
func (s *stubAnalytics) FuelByVehicle() ([]*repository.VehicleFuel, error)   { return s.fuel, nil }
func (s *stubAnalytics) MaintenanceCostTotal() (decimal.Decimal, error)      { return decimal.Zero, nil }

type fixture struct {
	uc        *fleet.UseCase
	vehicles  *memVehicles
	fuel      *memFuel
	analytics *stubAnalytics
}

func newFixture() *fixture {
	vehicles := newMemVehicles()
	fuelRepo := &memFuel{}
	analytics := &stubAnalytics{}
	tx := &memTx{vehicles: vehicles, fuel: fuelRepo}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return &fixture{
		uc:        fleet.NewUseCase(tx, vehicles, fuelRepo, analytics, log),
		vehicles:  vehicles,
		fuel:      fuelRepo,
		analytics: analytics,
	}
}

func (f *fixture) seedVehicle(t *testing.T, name string, currentKM, lastServiceKM, intervalKM int64) *entity.Vehicle {
	t.Helper()
	v := &entity.Vehicle{Name: name, CurrentKM: currentKM, LastServiceKM: lastServiceKM, ServiceIntervalKM: intervalKM}
	id, err := f.vehicles.Create(v)
	require.NoError(t, err)
	v.ID = id
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Odómetro
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOdometer_Avanza(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 49000, 40000, 15000)

	out, err := f.uc.UpdateOdometer(context.Background(), v.ID, dto.UpdateOdometerRequest{KM: 50000})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), out.CurrentKM)
	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(50000), stored.CurrentKM)
}

// Un kilometraje menor al vigente es casi seguro un dedo de más: se rechaza
// sin persistir nada.
func TestUpdateOdometer_RetrocesoSeRechaza(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	_, err := f.uc.UpdateOdometer(context.Background(), v.ID, dto.UpdateOdometerRequest{KM: 49000})
	assert.ErrorIs(t, err, domain.ErrOdometerRollback)

	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(50000), stored.CurrentKM)
}

// force habilita la corrección manual hacia atrás.
func TestUpdateOdometer_ForceCorrige(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	out, err := f.uc.UpdateOdometer(context.Background(), v.ID, dto.UpdateOdometerRequest{KM: 49000, Force: true})
	require.NoError(t, err)
	assert.Equal(t, int64(49000), out.CurrentKM)
}

func TestUpdateOdometer_KMNegativo(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	_, err := f.uc.UpdateOdometer(context.Background(), v.ID, dto.UpdateOdometerRequest{KM: -1, Force: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Combustible
// ──────────────────────────────────────────────────────────────────────────────

func fuelRequest(vehicleID, km int64) dto.CreateFuelLogRequest {
	return dto.CreateFuelLogRequest{
		VehicleID:  vehicleID,
		Liters:     decimal.RequireFromString("180.5"),
		Cost:       decimal.NewFromInt(250000),
		OdometerKM: km,
	}
}

// La carga actualiza el kilometraje del móvil como efecto secundario.
func TestRegisterFuelLog(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 49000, 40000, 15000)

	log, err := f.uc.RegisterFuelLog(context.Background(), fuelRequest(v.ID, 50000))
	require.NoError(t, err)

	assert.NotZero(t, log.ID)
	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(50000), stored.CurrentKM, "la carga arrastra el odómetro")
	assert.Len(t, f.fuel.rows, 1)
}

// Odómetro menor al vigente: se rechaza y no queda carga registrada.
func TestRegisterFuelLog_OdometroRetrocede(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	_, err := f.uc.RegisterFuelLog(context.Background(), fuelRequest(v.ID, 49000))
	assert.ErrorIs(t, err, domain.ErrOdometerRollback)

	assert.Empty(t, f.fuel.rows, "la carga rechazada no debe persistir")
	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(50000), stored.CurrentKM)
}

// La carga y el arrastre del odómetro van en la misma transacción: si la
// actualización del kilometraje falla, la carga tampoco debe quedar grabada.
func TestRegisterFuelLog_RollbackSiFallaOdometro(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 49000, 40000, 15000)
	f.vehicles.failOdometer = errors.New("database is locked")

	_, err := f.uc.RegisterFuelLog(context.Background(), fuelRequest(v.ID, 50000))
	require.Error(t, err)

	assert.Empty(t, f.fuel.rows, "sin odómetro actualizado, la carga se revierte")
	f.vehicles.failOdometer = nil
	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(49000), stored.CurrentKM)
}

// force permite la corrección manual también en las cargas.
func TestRegisterFuelLog_ForceCorrige(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	in := fuelRequest(v.ID, 49000)
	in.Force = true
	_, err := f.uc.RegisterFuelLog(context.Background(), in)
	require.NoError(t, err)

	stored, _ := f.vehicles.GetByID(v.ID)
	assert.Equal(t, int64(49000), stored.CurrentKM)
}

func TestRegisterFuelLog_EntradaInvalida(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	cases := []dto.CreateFuelLogRequest{
		{VehicleID: v.ID, Liters: decimal.Zero, OdometerKM: 51000},
		{VehicleID: v.ID, Liters: decimal.NewFromInt(-10), OdometerKM: 51000},
		{VehicleID: v.ID, Liters: decimal.NewFromInt(100), Cost: decimal.NewFromInt(-1), OdometerKM: 51000},
		{VehicleID: v.ID, Liters: decimal.NewFromInt(100), OdometerKM: -5},
	}
	for _, in := range cases {
		_, err := f.uc.RegisterFuelLog(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, f.fuel.rows)
}

func TestRegisterFuelLog_FechaInvalida(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	in := fuelRequest(v.ID, 51000)
	in.Date = "30/08/2026"
	_, err := f.uc.RegisterFuelLog(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de service y CPK
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceAlerts(t *testing.T) {
	f := newFixture()
	f.seedVehicle(t, "Al día", 10000, 0, 15000)
	f.seedVehicle(t, "Próximo", 14500, 0, 15000)
	f.seedVehicle(t, "Vencido", 16000, 0, 15000)
	f.seedVehicle(t, "Sin intervalo", 99000, 0, 0)

	alerts, err := f.uc.ServiceAlerts(context.Background())
	require.NoError(t, err)

	var names []string
	for _, v := range alerts {
		names = append(names, v.Name)
	}
	assert.ElementsMatch(t, []string{"Próximo", "Vencido"}, names)
}

func TestServiceStatus(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 16000, 0, 15000)

	st := f.uc.ServiceStatus(v)
	assert.Equal(t, domfleet.StateOverdue, st.State)
	assert.Equal(t, int64(1000), st.KMOverdue)
}

// CPK = (mantenimiento + combustible) / km recorridos entre la primera y la
// última carga. Sin recorrido registrado queda en cero.
func TestCostPerKM(t *testing.T) {
	f := newFixture()
	f.analytics.maint = []*repository.VehicleCost{
		{VehicleID: 1, VehicleName: "MB 1620", Orders: 3, Total: decimal.NewFromInt(60000)},
	}
	f.analytics.fuel = []*repository.VehicleFuel{
		{VehicleID: 1, VehicleName: "MB 1620", Cost: decimal.NewFromInt(40000), MinKM: 40000, MaxKM: 50000},
		{VehicleID: 2, VehicleName: "Scania G", Cost: decimal.NewFromInt(30000), MinKM: 70000, MaxKM: 70000},
	}

	rows, err := f.uc.CostPerKM(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(10000), rows[0].KMTravelled)
	assert.True(t, rows[0].CostPerKM.Equal(decimal.NewFromInt(10)),
		"(60000+40000)/10000 = 10, obtenido %s", rows[0].CostPerKM)

	assert.Equal(t, int64(0), rows[1].KMTravelled)
	assert.True(t, rows[1].CostPerKM.IsZero(), "sin recorrido el CPK queda en cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas y bajas de móviles
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVehicle_EntradaInvalida(t *testing.T) {
	f := newFixture()

	cases := []dto.CreateVehicleRequest{
		{Name: ""},
		{Name: "   "},
		{Name: "MB 1620", CurrentKM: -1},
		{Name: "MB 1620", LastServiceKM: -1},
	}
	for _, in := range cases {
		_, err := f.uc.CreateVehicle(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestDeleteVehicle_DosPasos(t *testing.T) {
	f := newFixture()
	v := f.seedVehicle(t, "MB 1620", 50000, 40000, 15000)

	err := f.uc.DeleteVehicle(context.Background(), v.ID, false)
	require.ErrorIs(t, err, domain.ErrConfirmationNeeded)
	_, err = f.vehicles.GetByID(v.ID)
	require.NoError(t, err, "sin confirmar, el móvil sigue existiendo")

	require.NoError(t, f.uc.DeleteVehicle(context.Background(), v.ID, true))
	_, err = f.vehicles.GetByID(v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
