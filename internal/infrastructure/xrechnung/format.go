package xrechnung

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/xrechnung-api/pkg/en16931"
	"github.com/shopspring/decimal"
)

// FormatDate102 devuelve la fecha como CCYYMMDD (UNTDID 2379, formato 102).
// Se toma la fecha de calendario en la zona del propio valor, sin conversión.
func FormatDate102(t time.Time) (string, error) {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return "", &InvalidDateError{Value: t}
	}
	return t.Format("20060102"), nil
}

// FormatAmount redondea a 2 decimales y devuelve punto fijo (ej: 1500.00).
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// FormatNullAmount como FormatAmount; un importe ausente se trata como 0.
func FormatNullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return FormatAmount(decimal.Zero)
	}
	return FormatAmount(d.Decimal)
}

// ParseAmount convierte el texto recibido por la API en decimal.
// Vacío equivale a 0; cualquier otro texto no numérico es InvalidAmountError.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Value: raw, Err: err}
	}
	return d, nil
}

// FormatQuantity cantidad tal cual, sin ceros a la derecha (ej: 1, 2.5).
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

// EscapeXML escapa & < > " ' en ese orden. El & va primero para no escapar dos veces.
func EscapeXML(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// CheckXMLText comprueba que s se pueda serializar como texto XML 1.0.
// EscapeXML no toca estos caracteres: se rechazan antes de escribir.
func CheckXMLText(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return &InvalidTextError{Offset: i, Rune: utf8.RuneError}
		}
		if !xmlChar(r) {
			return &InvalidTextError{Offset: i, Rune: r}
		}
		i += size
	}
	return nil
}

// xmlChar producción Char de XML 1.0.
func xmlChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	}
	return r <= 0x10FFFF
}

// VATCategoryCode categoría UNTDID 5305 de una posición.
// Kleinunternehmer siempre es E, aunque la posición tenga tipo 0.
func VATCategoryCode(rate decimal.Decimal, smallBusiness bool) string {
	if smallBusiness {
		return en16931.VATExempt
	}
	if rate.IsZero() {
		return en16931.VATZero
	}
	return en16931.VATStandard
}
