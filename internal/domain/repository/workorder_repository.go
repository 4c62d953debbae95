package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// WorkOrderFilter filtra el historial de OTs.
type WorkOrderFilter struct {
	Status string // "" = todas
	Text   string // busca en móvil / descripción
	Limit  int
}

// WorkOrderRepository puerto de persistencia de órdenes de trabajo.
type WorkOrderRepository interface {
	Create(o *entity.WorkOrder) (int64, error)
	GetByID(id int64) (*entity.WorkOrder, error)
	List(f WorkOrderFilter) ([]*entity.WorkOrder, error)
	ListByDate(date string, limit int) ([]*entity.WorkOrder, error)
	Update(o *entity.WorkOrder) error
	Delete(id int64) error

	AddTask(t *entity.OrderTask) error
	ListTasks(orderID int64) ([]*entity.OrderTask, error)
}
