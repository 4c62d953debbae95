package usecase

import (
	"context"
	"strings"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// TireUseCase administra el stock de cubiertas por lote.
type TireUseCase struct {
	tires repository.TireRepository
}

// NewTireUseCase construye el caso de uso.
func NewTireUseCase(tires repository.TireRepository) *TireUseCase {
	return &TireUseCase{tires: tires}
}

// Create da de alta un lote. La medida admite texto libre además de las
// medidas habituales; la condición es un conjunto cerrado.
func (uc *TireUseCase) Create(ctx context.Context, in dto.CreateTireLotRequest) (*entity.TireLot, error) {
	size := strings.TrimSpace(in.Size)
	if size == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTireCondition(in.Cond) {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.TireLot{
		Brand:    strings.TrimSpace(in.Brand),
		Model:    strings.TrimSpace(in.Model),
		Size:     size,
		DOT:      strings.TrimSpace(in.DOT),
		Cond:     in.Cond,
		Quantity: in.Quantity,
		Location: strings.TrimSpace(in.Location),
	}
	id, err := uc.tires.Create(t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// List devuelve todos los lotes.
func (uc *TireUseCase) List(ctx context.Context) ([]*entity.TireLot, error) {
	return uc.tires.List()
}

// Update modifica un lote (cantidad incluida: las cubiertas no llevan kardex).
func (uc *TireUseCase) Update(ctx context.Context, id int64, in dto.CreateTireLotRequest) (*entity.TireLot, error) {
	t, err := uc.tires.GetByID(id)
	if err != nil {
		return nil, err
	}
	if size := strings.TrimSpace(in.Size); size != "" {
		t.Size = size
	}
	if in.Cond != "" {
		if !entity.ValidTireCondition(in.Cond) {
			return nil, domain.ErrInvalidInput
		}
		t.Cond = in.Cond
	}
	if in.Quantity >= 0 {
		t.Quantity = in.Quantity
	}
	t.Brand = strings.TrimSpace(in.Brand)
	t.Model = strings.TrimSpace(in.Model)
	t.DOT = strings.TrimSpace(in.DOT)
	t.Location = strings.TrimSpace(in.Location)
	if err := uc.tires.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete elimina un lote en dos pasos.
func (uc *TireUseCase) Delete(ctx context.Context, id int64, confirm bool) error {
	if _, err := uc.tires.GetByID(id); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	return uc.tires.Delete(id)
}
