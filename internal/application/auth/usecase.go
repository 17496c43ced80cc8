package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/xrechnung-api/internal/application/dto"
	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/internal/domain/repository"
	"github.com/jhoicas/xrechnung-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña al registrar.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de usuarios y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, now: time.Now}
}

// RegisterUser hashea la contraseña con bcrypt y persiste el usuario.
// Devuelve ErrEmailAlreadyExists si el email ya existe y ErrInvalidInput si
// faltan datos o el rol no es reconocido.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: email y password (mín. %d caracteres) requeridos", domain.ErrInvalidInput, MinPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = jwt.RoleViewer
	}
	if !jwt.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, role)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     in.TenantID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña errónea devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Bootstrap crea el administrador inicial si el email aún no existe.
// Sin email configurado no hace nada.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, email, password string) (created bool, err error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password, Role: jwt.RoleAdmin})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return false, nil
	default:
		return false, err
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
