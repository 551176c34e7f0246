package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CategoriaInput struct {
	Nombre *string
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}
