package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrUnknownItem         = errors.New("el SKU no existe en el inventario")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrDuplicateShipmentID = errors.New("número de remesa ya utilizado")
	ErrTransactionFailed   = errors.New("la transacción no pudo confirmarse")
)

// UnknownItemError indica qué SKU de una remesa no existe en el inventario.
// errors.Is(err, ErrUnknownItem) == true.
type UnknownItemError struct {
	SKU string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("el SKU %q no existe en el inventario", e.SKU)
}

func (e *UnknownItemError) Unwrap() error { return ErrUnknownItem }

// StockError indica qué SKU quedaría con stock negativo, cuánto hay disponible
// y cuánto se intentó descontar. errors.Is(err, ErrInsufficientStock) == true.
type StockError struct {
	SKU       string
	Available int64
	Requested int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d", e.SKU, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
