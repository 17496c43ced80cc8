package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserSchema tabla de usuarios; el email es único sin distinguir mayúsculas.
const UserSchema = `
CREATE TABLE IF NOT EXISTS xrechnung_users (
	id            UUID PRIMARY KEY,
	tenant_id     TEXT        NOT NULL DEFAULT '',
	email         TEXT        NOT NULL,
	password_hash TEXT        NOT NULL,
	name          TEXT        NOT NULL,
	role          TEXT        NOT NULL,
	status        TEXT        NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS xrechnung_users_email_idx ON xrechnung_users (lower(email));`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// EnsureSchema crea la tabla de usuarios.
func (r *UserRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, UserSchema); err != nil {
		return fmt.Errorf("crear esquema xrechnung_users: %w", err)
	}
	return nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO xrechnung_users (id, tenant_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.TenantID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, role, status, created_at, updated_at
		FROM xrechnung_users WHERE lower(email) = $1 LIMIT 1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}
