package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/xrechnung-api/internal/application/dto"
	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/jwt"
)

const secret = "auth-test-secret"

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	findErr error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byEmail == nil {
		m.byEmail = map[string]*entity.User{}
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newUseCase(repo *memUsers) *AuthUseCase {
	uc := NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "xrechnung-test"})
	uc.cost = bcrypt.MinCost
	uc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return uc
}

func TestRegisterUser_HasheaYNormalizaEmail(t *testing.T) {
	repo := &memUsers{}
	uc := newUseCase(repo)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "  Buchhaltung@Muster.de ", Password: "geheim123", Role: jwt.RoleAccounting, TenantID: "muster-gmbh",
	})
	require.NoError(t, err)
	assert.Equal(t, "buchhaltung@muster.de", out.Email)
	assert.Equal(t, "buchhaltung@muster.de", out.Name, "sin nombre se usa el email")
	assert.Equal(t, jwt.RoleAccounting, out.Role)
	assert.Equal(t, entity.UserActive, out.Status)

	stored := repo.byEmail["buchhaltung@muster.de"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "geheim123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("geheim123")))
}

func TestRegisterUser_RolPorDefectoViewer(t *testing.T) {
	out, err := newUseCase(&memUsers{}).RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.de", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleViewer, out.Role)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc := newUseCase(&memUsers{})
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "kurz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "12345678", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newUseCase(&memUsers{})
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.de", Password: "87654321"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc := newUseCase(&memUsers{})
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "12345678", Role: jwt.RoleAdmin, TenantID: "muster-gmbh"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "a@b.de", Password: "12345678"})
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "muster-gmbh", claims.TenantID)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "xrechnung-test", claims.Issuer)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(&memUsers{})
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.de", Password: "falsch!!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.de", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente no se distingue")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := &memUsers{}
	uc := newUseCase(repo)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.de", Password: "12345678"})
	require.NoError(t, err)
	repo.byEmail["a@b.de"].Status = entity.UserInactive

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.de", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_ErrorDeRepositorio(t *testing.T) {
	boom := errors.New("conexión perdida")
	_, err := newUseCase(&memUsers{findErr: boom}).Login(context.Background(), dto.LoginRequest{Email: "a@b.de", Password: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestBootstrap(t *testing.T) {
	repo := &memUsers{}
	uc := newUseCase(repo)
	ctx := context.Background()

	created, err := uc.Bootstrap(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created, "sin email configurado no se crea nada")

	created, err = uc.Bootstrap(ctx, "admin@muster.de", "start12345")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, jwt.RoleAdmin, repo.byEmail["admin@muster.de"].Role)

	created, err = uc.Bootstrap(ctx, "admin@muster.de", "otra-clave")
	require.NoError(t, err)
	assert.False(t, created, "segunda vez no hace nada")

	_, err = uc.Bootstrap(ctx, "root@muster.de", "kurz")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
