package workorder

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// partLine es una línea de pedido ya validada contra el pañol.
type partLine struct {
	Item     *entity.StockItem
	Quantity int64
}

// snapshotLine es lo que queda congelado en la OT como auditoría del pedido.
type snapshotLine struct {
	StockItemID int64  `json:"repuesto_id"`
	Name        string `json:"nombre"`
	Quantity    int64  `json:"cantidad"`
}

// Create da de alta una orden de trabajo. Es el único camino de creación:
// admin y operario pasan por acá, con capacidades distintas. Las tareas en
// texto libre se resuelven contra el catálogo canónico, y los repuestos
// pedidos quedan como solicitudes; el stock recién se mueve al aprobarlas
// (en el mismo acto si el actor puede autoaprobar).
func (uc *UseCase) Create(ctx context.Context, actor Actor, in dto.CreateWorkOrderRequest) (*entity.WorkOrder, error) {
	vehicle, err := uc.vehicles.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if in.DriverID != nil {
		if _, err := uc.drivers.GetByID(*in.DriverID); err != nil {
			return nil, err
		}
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidResponsible(in.Responsible) {
		return nil, domain.ErrInvalidInput
	}

	workshop, err := uc.resolveWorkshop(in)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != "" {
		if date, err = time.Parse("2006-01-02", in.Date); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	tasks, description, err := uc.resolveTasks(in.Tasks)
	if err != nil {
		return nil, err
	}

	lines, snapshot, err := uc.validateParts(in.Parts)
	if err != nil {
		return nil, err
	}

	if in.OdometerKM != nil && *in.OdometerKM < vehicle.CurrentKM {
		return nil, domain.ErrOdometerRollback
	}

	order := &entity.WorkOrder{
		Date:             date,
		VehicleID:        in.VehicleID,
		DriverID:         in.DriverID,
		Description:      description,
		Checklist:        entity.Checklist(in.Checklist),
		Category:         in.Category,
		Status:           entity.OrderPending,
		TotalCost:        in.ThirdPartyCost,
		ThirdPartyCost:   in.ThirdPartyCost,
		Responsible:      in.Responsible,
		ExternalWorkshop: workshop,
		PartsSnapshot:    snapshot,
		Observations:     strings.TrimSpace(in.Notes),
		CreatedBy:        actor.Username,
	}

	err = uc.txRunner.Run(ctx, func(
		orders repository.WorkOrderRepository,
		requests repository.PartsRequestRepository,
		stock repository.StockRepository,
		movements repository.MovementRepository,
		vehicles repository.VehicleRepository,
	) error {
		// El arrastre del odómetro cae con la OT si algo de lo demás falla.
		if in.OdometerKM != nil {
			if err := vehicles.UpdateOdometer(vehicle.ID, *in.OdometerKM); err != nil {
				return err
			}
		}

		id, err := orders.Create(order)
		if err != nil {
			return err
		}
		order.ID = id

		for _, t := range tasks {
			if err := orders.AddTask(&entity.OrderTask{
				WorkOrderID: id,
				TaskID:      t.TaskID,
				RawText:     t.Raw,
			}); err != nil {
				return err
			}
		}

		txID := uuid.NewString()
		for _, line := range lines {
			req := &entity.PartsRequest{
				WorkOrderID: id,
				StockItemID: line.Item.ID,
				Quantity:    line.Quantity,
				Status:      entity.RequestPending,
				RequestedBy: actor.Username,
			}
			reqID, err := requests.Create(req)
			if err != nil {
				return err
			}
			if !actor.Caps.CanSelfApprove {
				continue
			}
			if err := fulfillRequest(stock, movements, requests, fulfillment{
				RequestID:   reqID,
				WorkOrderID: id,
				StockItemID: line.Item.ID,
				Quantity:    line.Quantity,
				Destination: vehicle.Name,
				ApprovedBy:  actor.Username,
				TxID:        txID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("ot_id", order.ID).
		Str("movil", vehicle.Name).
		Str("rubro", order.Category).
		Int("tareas", len(tasks)).
		Int("repuestos", len(lines)).
		Bool("autoaprobada", actor.Caps.CanSelfApprove).
		Msg("orden de trabajo creada")

	return order, nil
}

// resolvedTask conserva el texto original junto a la tarea canónica.
type resolvedTask struct {
	TaskID int64
	Name   string
	Raw    string
}

// resolveTasks pasa cada línea de texto libre por el catálogo y arma la
// descripción de la OT con las formas canónicas. Líneas repetidas que
// resuelven a la misma tarea se colapsan.
func (uc *UseCase) resolveTasks(raw []string) ([]resolvedTask, string, error) {
	seen := make(map[int64]bool)
	var tasks []resolvedTask
	var names []string
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res, err := uc.resolver.Resolve(line)
		if err != nil {
			return nil, "", err
		}
		if seen[res.TaskID] {
			continue
		}
		seen[res.TaskID] = true
		tasks = append(tasks, resolvedTask{TaskID: res.TaskID, Name: res.Name, Raw: strings.TrimSpace(line)})
		names = append(names, res.Name)
	}
	if len(tasks) == 0 {
		return nil, "", domain.ErrEmptyTaskList
	}
	return tasks, strings.Join(names, " | "), nil
}

// resolveWorkshop determina el taller externo. Con responsable "Taller
// Externo" es obligatorio: sale del texto libre, del proveedor elegido o de
// un proveedor nuevo creado en el acto.
func (uc *UseCase) resolveWorkshop(in dto.CreateWorkOrderRequest) (string, error) {
	workshop := strings.TrimSpace(in.ExternalWorkshop)

	if in.SupplierID != nil {
		s, err := uc.suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return "", err
		}
		if workshop == "" {
			workshop = s.Company
		}
	}

	if name := strings.TrimSpace(in.NewSupplier); name != "" {
		s, err := uc.suppliers.GetByCompany(name)
		if err == domain.ErrNotFound {
			if _, err := uc.suppliers.Create(&entity.Supplier{Company: name}); err != nil {
				return "", err
			}
		} else if err != nil {
			return "", err
		} else {
			name = s.Company
		}
		if workshop == "" {
			workshop = name
		}
	}

	if in.Responsible == entity.ResponsibleExternal && workshop == "" {
		return "", domain.ErrMissingWorkshop
	}
	if in.Responsible != entity.ResponsibleExternal {
		workshop = ""
	}
	return workshop, nil
}

// validateParts chequea cada línea contra el stock vigente. La validación es
// informativa (el descuento es diferido), pero corta en el acto pedidos que
// ya se sabe que no se pueden cumplir.
func (uc *UseCase) validateParts(parts []dto.OrderPartLine) ([]partLine, json.RawMessage, error) {
	if len(parts) == 0 {
		return nil, nil, nil
	}
	lines := make([]partLine, 0, len(parts))
	snap := make([]snapshotLine, 0, len(parts))
	for _, p := range parts {
		if p.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		item, err := uc.stock.GetByID(p.StockItemID)
		if err != nil {
			return nil, nil, err
		}
		if p.Quantity > item.Quantity {
			return nil, nil, domain.ErrInsufficientStock
		}
		lines = append(lines, partLine{Item: item, Quantity: p.Quantity})
		snap = append(snap, snapshotLine{StockItemID: item.ID, Name: item.Name, Quantity: p.Quantity})
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, nil, err
	}
	return lines, raw, nil
}
