package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnavailable        = errors.New("almacenamiento no disponible")

	// ErrConcurrentUpdate lo retorna el ledger cuando el update condicional
	// no afecta filas porque la cantidad esperada cambió entre lectura y escritura.
	ErrConcurrentUpdate = errors.New("modificación concurrente detectada")

	// ErrAuditPending indica que la mutación quedó confirmada en el ledger
	// pero el registro de auditoría no pudo persistirse; el caller debe
	// tratar la mutación como exitosa y reconciliar la auditoría fuera de línea.
	ErrAuditPending = errors.New("mutación confirmada, auditoría pendiente")
)
