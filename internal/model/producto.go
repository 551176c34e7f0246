package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog entry. FechaIngreso is written on insert only.
type Producto struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Nombre       string          `gorm:"not null" json:"nombre"`
	Precio       decimal.Decimal `gorm:"type:numeric;not null" json:"precio"`
	Descripcion  string          `gorm:"not null" json:"descripcion"`
	Disponible   bool            `gorm:"not null" json:"disponible"`
	FechaIngreso time.Time       `gorm:"<-:create;autoCreateTime;not null" json:"fecha_ingreso"`
	CategoriaID  uint            `gorm:"not null;index" json:"categoria_id"`
}

func (Producto) TableName() string { return "productos" }
