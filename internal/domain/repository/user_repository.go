package repository

import (
	"context"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios de la API.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
