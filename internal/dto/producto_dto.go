package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductoInput is the normalized result of validating a product payload.
// nil fields were absent from the input (partial mode only).
type ProductoInput struct {
	Nombre      *string
	Precio      *decimal.Decimal
	Descripcion *string
	Categoria   *string
	Disponible  *bool
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductoFilter struct {
	Disponible *bool
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           uint            `json:"id"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Descripcion  string          `json:"descripcion"`
	Disponible   bool            `json:"disponible"`
	FechaIngreso time.Time       `json:"fecha_ingreso"`
	CategoriaID  uint            `json:"categoria_id"`
}
