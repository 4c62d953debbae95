package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// NoticeRepository puerto de persistencia de novedades.
type NoticeRepository interface {
	Create(n *entity.Notice) (int64, error)
	GetByID(id int64) (*entity.Notice, error)
	ListActive() ([]*entity.Notice, error)
	Archive(id int64) error
}
