package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// fulfillment son los datos para cumplir una solicitud aprobada dentro de
// una transacción.
type fulfillment struct {
	RequestID   int64
	WorkOrderID int64
	StockItemID int64
	Quantity    int64
	Destination string
	ApprovedBy  string
	TxID        string
}

// fulfillRequest ejecuta el efecto de una aprobación: marca la solicitud,
// descuenta el stock y asienta la salida en el kardex. Corre siempre dentro
// de una transacción; cualquier error revierte los tres efectos.
func fulfillRequest(
	stock repository.StockRepository,
	movements repository.MovementRepository,
	requests repository.PartsRequestRepository,
	f fulfillment,
) error {
	// Resolve solo toca filas pendientes: es la guarda contra doble aprobación.
	if err := requests.Resolve(f.RequestID, entity.RequestApproved, f.ApprovedBy); err != nil {
		return err
	}
	item, err := stock.GetForUpdate(f.StockItemID)
	if err != nil {
		return err
	}
	if f.Quantity > item.Quantity {
		return domain.ErrInsufficientStock
	}
	if err := stock.AdjustQuantity(item.ID, -f.Quantity); err != nil {
		return err
	}
	_, err = movements.Create(&entity.StockMovement{
		TransactionID: f.TxID,
		StockItemID:   item.ID,
		Date:          time.Now(),
		Type:          entity.MovementExit,
		Quantity:      f.Quantity,
		UnitPrice:     item.UnitPrice,
		User:          f.ApprovedBy,
		Destination:   f.Destination,
		WorkOrderID:   &f.WorkOrderID,
	})
	return err
}

// ApproveRequest aprueba una solicitud de repuestos pendiente. El descuento
// de stock ocurre recién acá, contra la cantidad vigente al momento de
// aprobar; si ya no alcanza, la solicitud queda pendiente y no se mueve nada.
func (uc *UseCase) ApproveRequest(ctx context.Context, requestID int64, approvedBy string) error {
	req, err := uc.requests.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.Resolved() {
		return domain.ErrRequestResolved
	}
	order, err := uc.orders.GetByID(req.WorkOrderID)
	if err != nil {
		return err
	}
	vehicle, err := uc.vehicles.GetByID(order.VehicleID)
	if err != nil {
		return err
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.WorkOrderRepository,
		requests repository.PartsRequestRepository,
		stock repository.StockRepository,
		movements repository.MovementRepository,
		_ repository.VehicleRepository,
	) error {
		return fulfillRequest(stock, movements, requests, fulfillment{
			RequestID:   req.ID,
			WorkOrderID: req.WorkOrderID,
			StockItemID: req.StockItemID,
			Quantity:    req.Quantity,
			Destination: vehicle.Name,
			ApprovedBy:  approvedBy,
			TxID:        uuid.NewString(),
		})
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Int64("solicitud_id", req.ID).
		Int64("ot_id", req.WorkOrderID).
		Int64("repuesto_id", req.StockItemID).
		Int64("cantidad", req.Quantity).
		Str("aprobada_por", approvedBy).
		Msg("solicitud de repuestos aprobada")
	return nil
}

// RejectRequest rechaza una solicitud pendiente. No toca stock ni kardex.
func (uc *UseCase) RejectRequest(ctx context.Context, requestID int64, rejectedBy string) error {
	req, err := uc.requests.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.Resolved() {
		return domain.ErrRequestResolved
	}
	if err := uc.requests.Resolve(req.ID, entity.RequestRejected, rejectedBy); err != nil {
		return err
	}
	uc.log.Info().
		Int64("solicitud_id", req.ID).
		Int64("ot_id", req.WorkOrderID).
		Str("rechazada_por", rejectedBy).
		Msg("solicitud de repuestos rechazada")
	return nil
}

// PendingRequests lista las solicitudes sin resolver, para la bandeja del
// administrador.
func (uc *UseCase) PendingRequests(ctx context.Context) ([]*entity.PartsRequest, error) {
	return uc.requests.ListPending()
}

// RequestsByOrder lista las solicitudes de una OT.
func (uc *UseCase) RequestsByOrder(ctx context.Context, orderID int64) ([]*entity.PartsRequest, error) {
	if _, err := uc.orders.GetByID(orderID); err != nil {
		return nil, err
	}
	return uc.requests.ListByWorkOrder(orderID)
}
