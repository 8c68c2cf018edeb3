package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation         = errors.New("datos inválidos")
	ErrOutOfRange         = errors.New("valor fuera de rango")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrStorage            = errors.New("error de almacenamiento")
	ErrAlreadyExists      = errors.New("el documento ya existe")
	ErrRender             = errors.New("error al generar el documento")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrServiceUnavailable = errors.New("servicio no disponible")
)
