package xrechnung_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

func TestFormatDate102(t *testing.T) {
	s, err := xrechnung.FormatDate102(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "20250105", s)
}

func TestFormatDate102_SinConversionDeZona(t *testing.T) {
	// Se formatea la fecha de calendario local, sin pasar a UTC.
	berlin := time.FixedZone("CET", 3600)
	s, err := xrechnung.FormatDate102(time.Date(2025, time.December, 31, 23, 30, 0, 0, berlin))
	require.NoError(t, err)
	assert.Equal(t, "20251231", s)
}

func TestFormatDate102_FechaVacia(t *testing.T) {
	_, err := xrechnung.FormatDate102(time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, xrechnung.ErrInvalidDate))
	var de *xrechnung.InvalidDateError
	assert.True(t, errors.As(err, &de))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "119.00", xrechnung.FormatAmount(decimal.NewFromInt(119)))
	assert.Equal(t, "0.00", xrechnung.FormatAmount(decimal.Zero))
	assert.Equal(t, "10.13", xrechnung.FormatAmount(decimal.RequireFromString("10.125")))
	assert.Equal(t, "1000000.50", xrechnung.FormatAmount(decimal.RequireFromString("1e6").Add(decimal.RequireFromString("0.5"))),
		"nunca notación científica")
	assert.Equal(t, "-5.00", xrechnung.FormatAmount(decimal.NewFromInt(-5)))
}

func TestFormatNullAmount_AusenteEsCero(t *testing.T) {
	assert.Equal(t, "0.00", xrechnung.FormatNullAmount(decimal.NullDecimal{}))
	assert.Equal(t, "7.50", xrechnung.FormatNullAmount(decimal.NewNullDecimal(decimal.RequireFromString("7.5"))))
}

func TestParseAmount(t *testing.T) {
	d, err := xrechnung.ParseAmount(" 100.5 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100.5")))

	d, err = xrechnung.ParseAmount("")
	require.NoError(t, err)
	assert.True(t, d.IsZero(), "vacío se trata como 0")
}

func TestParseAmount_Invalido(t *testing.T) {
	_, err := xrechnung.ParseAmount("12,50 EUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xrechnung.ErrInvalidAmount))
	var ae *xrechnung.InvalidAmountError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "12,50 EUR", ae.Value)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "1", xrechnung.FormatQuantity(decimal.NewFromInt(1)))
	assert.Equal(t, "2.5", xrechnung.FormatQuantity(decimal.RequireFromString("2.5")))
	assert.Equal(t, "0", xrechnung.FormatQuantity(decimal.Zero))
}

func TestEscapeXML_AmpersandUnaSolaVez(t *testing.T) {
	assert.Equal(t, "&lt;A &amp; B&gt;", xrechnung.EscapeXML("<A & B>"))
	assert.Equal(t, "&quot;x&quot; &apos;y&apos;", xrechnung.EscapeXML(`"x" 'y'`))
	assert.Equal(t, "&amp;amp;", xrechnung.EscapeXML("&amp;"), "un & ya escapado se vuelve a escapar como texto")
	assert.Equal(t, "", xrechnung.EscapeXML(""))
}

func TestVATCategoryCode(t *testing.T) {
	assert.Equal(t, "S", xrechnung.VATCategoryCode(decimal.NewFromInt(19), false))
	assert.Equal(t, "S", xrechnung.VATCategoryCode(decimal.NewFromInt(7), false))
	assert.Equal(t, "Z", xrechnung.VATCategoryCode(decimal.Zero, false))
	assert.Equal(t, "E", xrechnung.VATCategoryCode(decimal.NewFromInt(19), true))
	assert.Equal(t, "E", xrechnung.VATCategoryCode(decimal.Zero, true), "Kleinunternehmer gana sobre tipo cero")
}

func TestFormatAmount_IndependienteDelOrdenDeCampos(t *testing.T) {
	price := decimal.RequireFromString("12.345")
	qty := decimal.NewFromInt(3)
	assert.Equal(t, xrechnung.FormatAmount(price.Mul(qty)), xrechnung.FormatAmount(qty.Mul(price)))
}

func TestCheckXMLText(t *testing.T) {
	for _, ok := range []string{"", "Müller & Söhne", "a\tb\nc\r", "€ 100", "\U0001F600"} {
		assert.NoError(t, xrechnung.CheckXMLText(ok), "%q", ok)
	}
	for _, bad := range []string{"\x00", "a\x01b", "\x1f", "\x0b", "\xff", "a\xc3", "\uFFFE", "\uFFFF"} {
		err := xrechnung.CheckXMLText(bad)
		require.Error(t, err, "%q", bad)
		assert.True(t, errors.Is(err, xrechnung.ErrInvalidText), "%q", bad)
	}
}

func TestCheckXMLText_Posicion(t *testing.T) {
	err := xrechnung.CheckXMLText("Ab\x07c")

	var te *xrechnung.InvalidTextError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2, te.Offset)
	assert.Equal(t, rune(0x07), te.Rune)
	assert.Contains(t, err.Error(), "U+0007")
}
