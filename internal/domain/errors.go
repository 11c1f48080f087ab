package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidState      = errors.New("operación no válida en el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockShortage detalla un rechazo por stock insuficiente: qué variación,
// cuánto se pidió y cuánto había. errors.Is(err, ErrInsufficientStock) == true.
type StockShortage struct {
	VariationID string
	Required    int64
	Available   int64
}

func (e *StockShortage) Error() string {
	return fmt.Sprintf("stock insuficiente para la variación %s: requerido %d, disponible %d",
		e.VariationID, e.Required, e.Available)
}

func (e *StockShortage) Unwrap() error { return ErrInsufficientStock }

// StateError detalla una transición inválida (ej: completar un pedido ya completo).
type StateError struct {
	Entity string
	ID     string
	State  string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s en estado %q: %s", e.Entity, e.ID, e.State, e.Reason)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }
