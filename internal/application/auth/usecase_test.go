package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transportechiro/flota-api/internal/application/auth"
	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	pkgjwt "github.com/transportechiro/flota-api/pkg/jwt"
)

type memUsers struct {
	nextID int64
	byName map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{nextID: 1, byName: make(map[string]*entity.User)}
}

func (m *memUsers) Create(u *entity.User) (int64, error) {
	id := m.nextID
	m.nextID++
	cp := *u
	cp.ID = id
	m.byName[u.Username] = &cp
	return id, nil
}

func (m *memUsers) GetByUsername(username string) (*entity.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(id int64) (*entity.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

var testCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "flota-api-test"}

func TestRegisterUser(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)

	user, err := uc.RegisterUser(dto.RegisterUserRequest{
		Username: "maxi",
		Password: "secreta123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.NotEqual(t, "secreta123", user.PasswordHash, "la contraseña nunca se guarda en claro")
}

// Sin rol explícito, el usuario nuevo entra como operario.
func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)

	user, err := uc.RegisterUser(dto.RegisterUserRequest{Username: "pañolero", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, user.Role)
}

func TestRegisterUser_Duplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)

	_, err := uc.RegisterUser(dto.RegisterUserRequest{Username: "maxi", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterUserRequest{Username: "maxi", Password: "otra456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)

	cases := []dto.RegisterUserRequest{
		{Username: "", Password: "secreta123"},
		{Username: "   ", Password: "secreta123"},
		{Username: "maxi", Password: "abc"},
		{Username: "maxi", Password: "secreta123", Role: "superadmin"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// El login devuelve un token cuyas claims reflejan al usuario.
func TestLogin(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)
	user, err := uc.RegisterUser(dto.RegisterUserRequest{
		Username: "maxi",
		Password: "secreta123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Username: "maxi", Password: "secreta123"})
	require.NoError(t, err)

	assert.Equal(t, "maxi", out.Username)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	userID, username, role, err := pkgjwt.Parse(testCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", userID)
	assert.Equal(t, user.Username, username)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)
	_, err := uc.RegisterUser(dto.RegisterUserRequest{Username: "maxi", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "maxi", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUsers(), testCfg)

	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
