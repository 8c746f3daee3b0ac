package services

import "errors"

// Common service errors
var (
	ErrNotFound        = errors.New("registro no encontrado")
	ErrInvalidPassword = errors.New("contraseña inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrInvalidState    = errors.New("transición de estado inválida")
	ErrDuplicate       = errors.New("registro duplicado")
	ErrInvalidAmount   = errors.New("monto inválido")
	ErrNoAdjustment    = errors.New("no existe un ajuste previo para revertir")
	ErrSpaceOccupied   = errors.New("el espacio común ya está reservado en ese horario")
)
