package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/xrechnung-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "muster-gmbh", pkgjwt.RoleAccounting, "xrechnung-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "muster-gmbh", claims.TenantID)
	assert.Equal(t, pkgjwt.RoleAccounting, claims.Role)
	assert.Equal(t, "xrechnung-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "t", pkgjwt.RoleAdmin, "x", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "t", pkgjwt.RoleAdmin, "x", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u", "t", "", "x", 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "a.b.c")
	assert.Error(t, err)
}

func TestValidRole(t *testing.T) {
	assert.True(t, pkgjwt.ValidRole(pkgjwt.RoleAdmin))
	assert.True(t, pkgjwt.ValidRole(pkgjwt.RoleAccounting))
	assert.True(t, pkgjwt.ValidRole(pkgjwt.RoleViewer))
	assert.False(t, pkgjwt.ValidRole(""))
	assert.False(t, pkgjwt.ValidRole("Admin"))
}
