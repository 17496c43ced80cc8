package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

// Amount importe en el JSON: acepta número o texto ("119.00").
// null, ausente o "" dejan Set en false.
type Amount struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalJSON texto no numérico -> *xrechnung.InvalidAmountError.
func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
	}
	d, err := xrechnung.ParseAmount(s)
	if err != nil {
		return err
	}
	a.Value, a.Set = d, true
	return nil
}

// MarshalJSON como texto con los decimales originales.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value.String())
}

// Null forma opcional para los totales.
func (a Amount) Null() decimal.NullDecimal {
	if !a.Set {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Value)
}

// NewAmount importe presente.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Set: true}
}

const dateLayout = "2006-01-02"

// Date fecha de calendario ISO (2025-03-10). Vacía o null = ausente.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	d.Time = time.Time{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: se esperaba texto AAAA-MM-DD: %w", err)
	}
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return &xrechnung.InvalidDateError{Value: time.Time{}, Raw: s}
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}
