package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// UseCase administra el pañol: artículos, entradas, salidas y el kardex.
// Toda variación de cantidad deja un asiento; el kardex nunca se edita.
type UseCase struct {
	txRunner  TxRunner
	stock     repository.StockRepository
	movements repository.MovementRepository
	vehicles  repository.VehicleRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	stock repository.StockRepository,
	movements repository.MovementRepository,
	vehicles repository.VehicleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		stock:     stock,
		movements: movements,
		vehicles:  vehicles,
		log:       log,
	}
}

// CreateItem da de alta un artículo. Si entra con cantidad inicial, el alta
// asienta un movimiento CREACION con esa cantidad en la misma transacción.
func (uc *UseCase) CreateItem(ctx context.Context, user string, in dto.CreateStockItemRequest) (*entity.StockItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity < 0 || in.Minimum < 0 {
		return nil, domain.ErrInvalidInput
	}

	item := &entity.StockItem{
		Code:     strings.TrimSpace(in.Code),
		Name:     name,
		Quantity: in.Quantity,
		Minimum:  in.Minimum,
		Rubro:    strings.TrimSpace(in.Rubro),
		Supplier: strings.TrimSpace(in.Supplier),
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = decimal.NullDecimal{Decimal: *in.UnitPrice, Valid: true}
	}

	err := uc.txRunner.Run(ctx, func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
	) error {
		id, err := stock.Create(item)
		if err != nil {
			return err
		}
		item.ID = id
		if item.Quantity == 0 {
			return nil
		}
		_, err = movements.Create(&entity.StockMovement{
			TransactionID: uuid.NewString(),
			StockItemID:   id,
			Date:          time.Now(),
			Type:          entity.MovementCreation,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			User:          user,
			Supplier:      item.Supplier,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("repuesto_id", item.ID).Str("nombre", item.Name).Msg("artículo dado de alta")
	return item, nil
}

// RegisterEntry registra un ingreso: suma cantidad, actualiza el precio de
// referencia si vino uno y asienta la ENTRADA, todo en una transacción.
func (uc *UseCase) RegisterEntry(ctx context.Context, itemID int64, user string, in dto.StockEntryRequest) (*entity.StockItem, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
	) error {
		item, err := stock.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		item.Quantity += in.Quantity
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.UnitPrice = decimal.NullDecimal{Decimal: *in.UnitPrice, Valid: true}
		}
		if s := strings.TrimSpace(in.Supplier); s != "" {
			item.Supplier = s
		}
		if err := stock.Update(item); err != nil {
			return err
		}
		if _, err := movements.Create(&entity.StockMovement{
			TransactionID: uuid.NewString(),
			StockItemID:   item.ID,
			Date:          time.Now(),
			Type:          entity.MovementEntry,
			Quantity:      in.Quantity,
			UnitPrice:     item.UnitPrice,
			User:          user,
			Supplier:      strings.TrimSpace(in.Supplier),
			Receipt:       strings.TrimSpace(in.Receipt),
		}); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("repuesto_id", out.ID).
		Int64("cantidad", in.Quantity).
		Int64("saldo", out.Quantity).
		Msg("entrada de stock registrada")
	return out, nil
}

// RegisterExit registra un egreso manual (sin OT de por medio). Si la
// cantidad pedida supera el saldo vigente, rechaza sin tocar nada e informa
// cuánto hay. El destino es un móvil o un texto libre interno.
func (uc *UseCase) RegisterExit(ctx context.Context, itemID int64, user string, in dto.StockExitRequest) (*entity.StockItem, error) {
	if in.Quantity <= 0 || strings.TrimSpace(in.Responsible) == "" {
		return nil, domain.ErrInvalidInput
	}

	destination := strings.TrimSpace(in.Destination)
	if in.VehicleID != nil {
		vehicle, err := uc.vehicles.GetByID(*in.VehicleID)
		if err != nil {
			return nil, err
		}
		destination = vehicle.Name
	}
	if destination == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
	) error {
		item, err := stock.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if in.Quantity > item.Quantity {
			return fmt.Errorf("%w: hay %d de %q", domain.ErrInsufficientStock, item.Quantity, item.Name)
		}
		if err := stock.AdjustQuantity(item.ID, -in.Quantity); err != nil {
			return err
		}
		item.Quantity -= in.Quantity
		if _, err := movements.Create(&entity.StockMovement{
			TransactionID: uuid.NewString(),
			StockItemID:   item.ID,
			Date:          time.Now(),
			Type:          entity.MovementExit,
			Quantity:      in.Quantity,
			UnitPrice:     item.UnitPrice,
			User:          strings.TrimSpace(in.Responsible),
			Destination:   destination,
		}); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("repuesto_id", out.ID).
		Int64("cantidad", in.Quantity).
		Str("destino", destination).
		Int64("saldo", out.Quantity).
		Msg("salida de stock registrada")
	return out, nil
}

// GetItem devuelve un artículo por id.
func (uc *UseCase) GetItem(ctx context.Context, id int64) (*entity.StockItem, error) {
	return uc.stock.GetByID(id)
}

// ListItems devuelve el pañol completo, o filtrado por texto de búsqueda.
func (uc *UseCase) ListItems(ctx context.Context, query string) ([]*entity.StockItem, error) {
	if q := strings.TrimSpace(query); q != "" {
		return uc.stock.Search(q)
	}
	return uc.stock.List()
}

// LowStockItems devuelve los artículos en o por debajo de su mínimo. Un
// mínimo en cero desactiva el control para ese artículo.
func (uc *UseCase) LowStockItems(ctx context.Context) ([]*entity.StockItem, error) {
	items, err := uc.stock.List()
	if err != nil {
		return nil, err
	}
	var low []*entity.StockItem
	for _, it := range items {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low, nil
}

// UpdateItem modifica los datos maestros de un artículo. La cantidad no se
// toca por acá: solo entradas, salidas y aprobaciones mueven el saldo.
func (uc *UseCase) UpdateItem(ctx context.Context, id int64, in dto.CreateStockItemRequest) (*entity.StockItem, error) {
	item, err := uc.stock.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		item.Name = name
	}
	if in.Minimum >= 0 {
		item.Minimum = in.Minimum
	}
	item.Code = strings.TrimSpace(in.Code)
	item.Rubro = strings.TrimSpace(in.Rubro)
	if s := strings.TrimSpace(in.Supplier); s != "" {
		item.Supplier = s
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = decimal.NullDecimal{Decimal: *in.UnitPrice, Valid: true}
	}
	if err := uc.stock.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem elimina un artículo en dos pasos: sin confirmar devuelve
// ErrConfirmationNeeded y no borra nada. El kardex conserva sus asientos.
func (uc *UseCase) DeleteItem(ctx context.Context, id int64, confirm bool) error {
	item, err := uc.stock.GetByID(id)
	if err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	if err := uc.stock.Delete(item.ID); err != nil {
		return err
	}
	uc.log.Warn().Int64("repuesto_id", item.ID).Str("nombre", item.Name).Msg("artículo eliminado")
	return nil
}

// Valuation calcula la valorización total del pañol. Artículos sin precio
// cargado suman cero, no invalidan el total.
func (uc *UseCase) Valuation(ctx context.Context) (*dto.StockValuationDTO, error) {
	items, err := uc.stock.List()
	if err != nil {
		return nil, err
	}
	out := &dto.StockValuationDTO{Items: len(items)}
	for _, it := range items {
		out.Units += it.Quantity
		out.TotalValue = out.TotalValue.Add(it.Value())
	}
	return out, nil
}

// Kardex devuelve los últimos asientos, globales o de un artículo.
func (uc *UseCase) Kardex(ctx context.Context, itemID int64, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if itemID > 0 {
		return uc.movements.ListByItem(itemID, limit)
	}
	return uc.movements.ListRecent(limit)
}
