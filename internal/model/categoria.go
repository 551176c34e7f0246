package model

// Categoria represents a product category used to classify products.
// nombre is unique case-insensitively (lower(nombre) index).
type Categoria struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"not null" json:"nombre"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
