package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// Verificación en tiempo de compilación del puerto transaccional de OTs.
var _ workorder.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner sobre la conexión.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos de OTs atados a la tx y
// hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orders repository.WorkOrderRepository,
	requests repository.PartsRequestRepository,
	stock repository.StockRepository,
	movements repository.MovementRepository,
	vehicles repository.VehicleRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	orders := NewWorkOrderRepository(tx)
	requests := NewPartsRequestRepository(tx)
	stock := NewStockRepository(tx)
	movements := NewMovementRepository(tx)
	vehicles := NewVehicleRepository(tx)

	if err := fn(orders, requests, stock, movements, vehicles); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InventoryTxRunner adapta la misma conexión al puerto transaccional del
// pañol, que solo necesita stock y kardex.
type InventoryTxRunner struct {
	db *sql.DB
}

// NewInventoryTxRunner construye el runner sobre la conexión.
func NewInventoryTxRunner(db *sql.DB) *InventoryTxRunner {
	return &InventoryTxRunner{db: db}
}

var _ inventory.TxRunner = (*InventoryTxRunner)(nil)

// Run inicia una transacción, ejecuta fn con repos de pañol atados a la tx y
// hace Commit o Rollback.
func (r *InventoryTxRunner) Run(ctx context.Context, fn func(
	stock repository.StockRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewStockRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// FleetTxRunner adapta la misma conexión al puerto transaccional de flota:
// la carga de combustible y el arrastre del odómetro van juntos.
type FleetTxRunner struct {
	db *sql.DB
}

// NewFleetTxRunner construye el runner sobre la conexión.
func NewFleetTxRunner(db *sql.DB) *FleetTxRunner {
	return &FleetTxRunner{db: db}
}

var _ fleet.TxRunner = (*FleetTxRunner)(nil)

// Run inicia una transacción, ejecuta fn con los repos de flota atados a la
// tx y hace Commit o Rollback.
func (r *FleetTxRunner) Run(ctx context.Context, fn func(
	fuel repository.FuelRepository,
	vehicles repository.VehicleRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewFuelRepository(tx), NewVehicleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
