package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item. Precio is the tax-inclusive sale price; IVAPct
// is the percentage already embedded in it (0 = exempt). StockActual is only
// mutated through kardex movements (never through a catalog update).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Categoria   string    `gorm:"not null"`
	Descripcion *string
	Imagen      *string
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVAPct      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:iva_pct"`
	StockActual int             `gorm:"not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
