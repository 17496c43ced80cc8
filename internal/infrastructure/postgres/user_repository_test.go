package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

func TestUserRepo_Create(t *testing.T) {
	q := &fakeQuerier{}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	u := &entity.User{ID: "u1", TenantID: "muster-gmbh", Email: "a@b.de", PasswordHash: "$2a$", Name: "A", Role: "admin", Status: entity.UserActive, CreatedAt: now, UpdatedAt: now}

	require.NoError(t, NewUserRepository(q).Create(context.Background(), u))
	assert.Contains(t, q.sql, "INSERT INTO xrechnung_users")
	require.Len(t, q.args, 9)
	assert.Equal(t, "muster-gmbh", q.args[1])
	assert.Equal(t, "$2a$", q.args[3])
}

func TestUserRepo_CreateEmailDuplicado(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	err := NewUserRepository(q).Create(context.Background(), &entity.User{ID: "u1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_FindByEmailNormaliza(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "u1"
		*dest[2].(*string) = "a@b.de"
		*dest[5].(*string) = "buchhaltung"
		*dest[6].(*string) = entity.UserActive
		return nil
	}}}
	u, err := NewUserRepository(q).FindByEmail(context.Background(), " A@B.de ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, []any{"a@b.de"}, q.args)
	assert.Equal(t, "buchhaltung", u.Role)
	assert.True(t, u.Active())
}

func TestUserRepo_FindByEmailNoExiste(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	u, err := NewUserRepository(q).FindByEmail(context.Background(), "x@y.de")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_EnsureSchema(t *testing.T) {
	q := &fakeQuerier{}
	require.NoError(t, NewUserRepository(q).EnsureSchema(context.Background()))
	assert.Contains(t, q.sql, "CREATE TABLE IF NOT EXISTS xrechnung_users")
}
