package workorder

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// Get devuelve una OT por id.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.WorkOrder, error) {
	return uc.orders.GetByID(id)
}

// List devuelve el historial filtrado.
func (uc *UseCase) List(ctx context.Context, f repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	return uc.orders.List(f)
}

// ListByDate devuelve las últimas OTs de un día (YYYY-MM-DD).
func (uc *UseCase) ListByDate(ctx context.Context, date string, limit int) ([]*entity.WorkOrder, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return uc.orders.ListByDate(date, limit)
}

// Tasks devuelve las tareas de una OT con su forma canónica resuelta.
func (uc *UseCase) Tasks(ctx context.Context, orderID int64) ([]dto.OrderTaskDTO, error) {
	rows, err := uc.orders.ListTasks(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderTaskDTO, 0, len(rows))
	for _, t := range rows {
		name, err := uc.resolver.TaskName(t.TaskID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.OrderTaskDTO{TaskID: t.TaskID, Name: name, RawText: t.RawText})
	}
	return out, nil
}

// Update aplica cambios parciales a una OT abierta. Las transiciones de
// estado solo van hacia adelante (Pendiente → En Proceso → Cerrada); pasar a
// Cerrada por esta vía equivale a cerrar la orden.
func (uc *UseCase) Update(ctx context.Context, id int64, actor Actor, in dto.UpdateWorkOrderRequest) (*entity.WorkOrder, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Closed() {
		return nil, domain.ErrAlreadyClosed
	}

	if in.Responsible != nil {
		if !entity.ValidResponsible(*in.Responsible) {
			return nil, domain.ErrInvalidInput
		}
		if *in.Responsible == entity.ResponsibleExternal && order.ExternalWorkshop == "" {
			return nil, domain.ErrMissingWorkshop
		}
		order.Responsible = *in.Responsible
		if order.Responsible != entity.ResponsibleExternal {
			order.ExternalWorkshop = ""
		}
	}
	if in.Notes != nil {
		order.Observations = strings.TrimSpace(*in.Notes)
	}
	if in.ThirdPartyCost != nil {
		order.ThirdPartyCost = *in.ThirdPartyCost
	}

	if in.Status != nil && *in.Status != order.Status {
		switch {
		case order.Status == entity.OrderPending && *in.Status == entity.OrderInProcess:
			order.Status = entity.OrderInProcess
		case *in.Status == entity.OrderClosed:
			return uc.close(order, actor, "")
		default:
			return nil, domain.ErrConflict
		}
	}

	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Close cierra la OT: estampa la fecha de cierre y fija el costo final como
// costo de terceros más los repuestos efectivamente entregados. El body puede
// traer el costo de terceros definitivo, que pisa el estimado al crear.
func (uc *UseCase) Close(ctx context.Context, id int64, actor Actor, in dto.CloseWorkOrderRequest) (*entity.WorkOrder, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.Closed() {
		return nil, domain.ErrAlreadyClosed
	}
	if in.ThirdPartyCost != nil {
		if in.ThirdPartyCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		order.ThirdPartyCost = *in.ThirdPartyCost
	}
	return uc.close(order, actor, in.FinalNotes)
}

func (uc *UseCase) close(order *entity.WorkOrder, actor Actor, finalNotes string) (*entity.WorkOrder, error) {
	partsCost, err := uc.partsCost(order.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = entity.OrderClosed
	order.ClosedAt = &now
	order.TotalCost = order.ThirdPartyCost.Add(partsCost)
	if notes := strings.TrimSpace(finalNotes); notes != "" {
		if order.Observations != "" {
			order.Observations += "\n"
		}
		order.Observations += notes
	}

	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("ot_id", order.ID).
		Str("costo_total", order.TotalCost.String()).
		Str("cerrada_por", actor.Username).
		Msg("orden de trabajo cerrada")
	return order, nil
}

// PartsCost devuelve el costo de repuestos ya aprobados de la OT, valuado a
// los precios registrados en el kardex al momento de cada aprobación.
func (uc *UseCase) PartsCost(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return uc.partsCost(orderID)
}

// partsCost suma cantidad × precio unitario de las salidas de kardex
// asociadas a la OT. Salidas sin precio cargado valen cero.
func (uc *UseCase) partsCost(orderID int64) (decimal.Decimal, error) {
	moves, err := uc.movements.ListByWorkOrder(orderID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range moves {
		if m.Type != entity.MovementExit || !m.UnitPrice.Valid {
			continue
		}
		total = total.Add(m.UnitPrice.Decimal.Mul(decimal.NewFromInt(m.Quantity)))
	}
	return total, nil
}

// DeleteSummary describe lo que una baja confirmada va a eliminar. Los
// asientos del kardex no se tocan: el ledger es inmutable y conserva la
// referencia a la OT borrada.
type DeleteSummary struct {
	OrderID       int64 `json:"ot_id"`
	Tasks         int   `json:"tareas"`
	PartsRequests int   `json:"solicitudes"`
}

// Delete elimina una OT en dos pasos. Sin confirmación devuelve el resumen
// junto con ErrConfirmationNeeded y no borra nada; confirmada, elimina la
// orden con sus tareas y solicitudes.
func (uc *UseCase) Delete(ctx context.Context, id int64, confirm bool) (*DeleteSummary, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.orders.ListTasks(order.ID)
	if err != nil {
		return nil, err
	}
	reqs, err := uc.requests.ListByWorkOrder(order.ID)
	if err != nil {
		return nil, err
	}
	summary := &DeleteSummary{OrderID: order.ID, Tasks: len(tasks), PartsRequests: len(reqs)}
	if !confirm {
		return summary, domain.ErrConfirmationNeeded
	}

	err = uc.txRunner.Run(ctx, func(
		orders repository.WorkOrderRepository,
		_ repository.PartsRequestRepository,
		_ repository.StockRepository,
		_ repository.MovementRepository,
		_ repository.VehicleRepository,
	) error {
		return orders.Delete(order.ID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Warn().Int64("ot_id", order.ID).Msg("orden de trabajo eliminada")
	return summary, nil
}
