package en16931

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeIBAN quita espacios y pasa a mayúsculas ("DE89 3704 ..." -> "DE893704...").
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, iban))
}

// ValidateIBAN comprueba longitud, formato y dígitos de control (ISO 13616, módulo 97).
// Acepta el IBAN con o sin espacios.
func ValidateIBAN(iban string) error {
	s := NormalizeIBAN(iban)
	if len(s) < 15 || len(s) > 34 {
		return fmt.Errorf("en16931: IBAN debe tener entre 15 y 34 caracteres, se recibieron %d", len(s))
	}
	for i := 0; i < 2; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return fmt.Errorf("en16931: IBAN debe empezar con código de país")
		}
	}
	for i := 2; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("en16931: dígitos de control del IBAN inválidos")
		}
	}
	if s[:2] == "DE" && len(s) != 22 {
		return fmt.Errorf("en16931: IBAN alemán debe tener 22 caracteres, se recibieron %d", len(s))
	}
	if mod97(s[4:]+s[:4]) != 1 {
		return fmt.Errorf("en16931: dígitos de control del IBAN no coinciden")
	}
	return nil
}

// mod97 calcula el resto módulo 97 convirtiendo letras a números (A=10 ... Z=35).
// Devuelve -1 si encuentra un carácter no alfanumérico.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
		default:
			return -1
		}
	}
	return rem
}
