package en16931_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
)

func TestValidateIBAN_Valido(t *testing.T) {
	assert.NoError(t, en16931.ValidateIBAN("DE89370400440532013000"))
	assert.NoError(t, en16931.ValidateIBAN("DE89 3704 0044 0532 0130 00"), "los espacios se ignoran")
	assert.NoError(t, en16931.ValidateIBAN("GB82WEST12345698765432"))
}

func TestValidateIBAN_DigitoControlIncorrecto(t *testing.T) {
	assert.Error(t, en16931.ValidateIBAN("DE88370400440532013000"))
}

func TestValidateIBAN_LongitudAlemanaIncorrecta(t *testing.T) {
	assert.Error(t, en16931.ValidateIBAN("DE8937040044053201300"))
}

func TestValidateIBAN_CaracterInvalido(t *testing.T) {
	assert.Error(t, en16931.ValidateIBAN("DE89370400440532013-00"))
}

func TestNormalizeIBAN(t *testing.T) {
	assert.Equal(t, "DE89370400440532013000", en16931.NormalizeIBAN(" de89 3704\t0044 0532 0130 00 "))
}
