package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrMissingRequiredField = errors.New("faltan términos de negocio obligatorios")
	ErrDigestMismatch       = errors.New("el hash del documento archivado no coincide con el registro")
)
