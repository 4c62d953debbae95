package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(u *entity.User) (int64, error)
	GetByUsername(username string) (*entity.User, error)
}
