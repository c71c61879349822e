package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrMaterialNotFound  = errors.New("material no encontrado")
	ErrNoRecipe          = errors.New("el producto no tiene receta (BOM)")
)

// Shortage describe un faltante de un material al validar un débito.
// Missing indica que el material no existe en el libro (disponible tratado como 0).
type Shortage struct {
	MaterialID   string          `json:"material_id,omitempty"`
	MaterialName string          `json:"material_name"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Missing      bool            `json:"missing,omitempty"`
}

// ShortageError reporta TODOS los faltantes de una operación, no solo el primero.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requerido: %s, disponible: %s)",
			s.MaterialName, s.Required.String(), s.Available.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, ", ")
}

// Is permite comparar con ErrInsufficientStock.
func (e *ShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// AsShortage extrae el detalle de faltantes de un error, si lo tiene.
func AsShortage(err error) ([]Shortage, bool) {
	var se *ShortageError
	if errors.As(err, &se) {
		return se.Shortages, true
	}
	return nil, false
}
