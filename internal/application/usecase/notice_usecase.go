package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// NoticeUseCase administra las novedades reportadas sobre los móviles.
type NoticeUseCase struct {
	notices  repository.NoticeRepository
	vehicles repository.VehicleRepository
	orders   *workorder.UseCase
}

// NewNoticeUseCase construye el caso de uso.
func NewNoticeUseCase(
	notices repository.NoticeRepository,
	vehicles repository.VehicleRepository,
	orders *workorder.UseCase,
) *NoticeUseCase {
	return &NoticeUseCase{notices: notices, vehicles: vehicles, orders: orders}
}

// Create registra una novedad activa sobre un móvil.
func (uc *NoticeUseCase) Create(ctx context.Context, in dto.CreateNoticeRequest) (*entity.Notice, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.vehicles.GetByID(in.VehicleID); err != nil {
		return nil, err
	}
	n := &entity.Notice{
		Date:        time.Now(),
		VehicleID:   in.VehicleID,
		Description: description,
		Status:      entity.NoticeActive,
	}
	id, err := uc.notices.Create(n)
	if err != nil {
		return nil, err
	}
	n.ID = id
	return n, nil
}

// ListActive devuelve las novedades sin archivar.
func (uc *NoticeUseCase) ListActive(ctx context.Context) ([]*entity.Notice, error) {
	return uc.notices.ListActive()
}

// Archive archiva una novedad sin generar OT.
func (uc *NoticeUseCase) Archive(ctx context.Context, id int64) error {
	n, err := uc.notices.GetByID(id)
	if err != nil {
		return err
	}
	if n.Status == entity.NoticeArchived {
		return domain.ErrConflict
	}
	return uc.notices.Archive(n.ID)
}

// Promote convierte la novedad en una orden de trabajo: la descripción pasa
// como tarea de la OT nueva y la novedad queda archivada.
func (uc *NoticeUseCase) Promote(ctx context.Context, id int64, actor workorder.Actor, in dto.PromoteNoticeRequest) (*entity.WorkOrder, error) {
	n, err := uc.notices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n.Status == entity.NoticeArchived {
		return nil, domain.ErrConflict
	}

	order, err := uc.orders.Create(ctx, actor, dto.CreateWorkOrderRequest{
		VehicleID:   n.VehicleID,
		Category:    in.Category,
		Responsible: in.Responsible,
		Tasks:       []string{n.Description},
	})
	if err != nil {
		return nil, err
	}
	if err := uc.notices.Archive(n.ID); err != nil {
		return nil, err
	}
	return order, nil
}
