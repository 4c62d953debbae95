package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. Username repetido devuelve ErrDuplicate.
func (r *UserRepo) Create(u *entity.User) (int64, error) {
	res, err := r.q.ExecContext(context.Background(),
		`INSERT INTO usuarios (username, password_hash, rol, creado_en) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return res.LastInsertId()
}

// GetByUsername obtiene un usuario por nombre.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, username, password_hash, rol, creado_en FROM usuarios WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
