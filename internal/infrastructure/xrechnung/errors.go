package xrechnung

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/xrechnung-api/internal/domain"
)

// Errores de formato de los primitivos.
var (
	ErrInvalidDate   = errors.New("xrechnung: fecha inválida")
	ErrInvalidAmount = errors.New("xrechnung: importe inválido")
	ErrInvalidText   = errors.New("xrechnung: texto no representable en XML")
)

// InvalidDateError fecha que no se puede representar como CCYYMMDD (formato 102).
type InvalidDateError struct {
	Value time.Time
	Raw   string // texto de entrada cuando la fecha no se pudo leer
}

func (e *InvalidDateError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("xrechnung: fecha inválida %q", e.Raw)
	}
	if e.Value.IsZero() {
		return "xrechnung: fecha inválida: vacía"
	}
	return fmt.Sprintf("xrechnung: fecha inválida: año %d fuera de rango", e.Value.Year())
}

// Unwrap permite errors.Is(err, ErrInvalidDate).
func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// InvalidAmountError texto que no es un importe decimal.
type InvalidAmountError struct {
	Value string
	Err   error
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("xrechnung: importe inválido %q: %v", e.Value, e.Err)
}

// Unwrap permite errors.Is(err, ErrInvalidAmount).
func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

// InvalidTextError texto con caracteres que XML 1.0 no admite
// (controles C0 salvo TAB/LF/CR, U+FFFE/U+FFFF o UTF-8 inválido).
type InvalidTextError struct {
	Element string // elemento (o elemento@atributo) donde apareció
	Offset  int    // posición en bytes dentro del texto
	Rune    rune   // utf8.RuneError si los bytes no son UTF-8 válido
}

func (e *InvalidTextError) Error() string {
	where := e.Element
	if where == "" {
		where = "texto"
	}
	if e.Rune == utf8.RuneError {
		return fmt.Sprintf("xrechnung: %s: UTF-8 inválido en la posición %d", where, e.Offset)
	}
	return fmt.Sprintf("xrechnung: %s: carácter U+%04X no permitido en la posición %d", where, e.Rune, e.Offset)
}

// Unwrap permite errors.Is(err, ErrInvalidText) y errors.Is(err, domain.ErrInvalidInput).
func (e *InvalidTextError) Unwrap() []error {
	return []error{ErrInvalidText, domain.ErrInvalidInput}
}
