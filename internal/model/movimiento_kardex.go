package model

import (
	"time"

	"github.com/google/uuid"
)

// Kardex movement types. Entrada-side types add stock, salida-side subtract.
const (
	MovEntrada       = "entrada"
	MovSalida        = "salida"
	MovCompra        = "compra"
	MovVenta         = "venta"
	MovAjusteEntrada = "ajuste_entrada"
	MovAjusteSalida  = "ajuste_salida"
)

// MovimientoKardex is an append-only ledger entry: never edited, never
// deleted. StockNuevo of one movement must equal StockAnterior of the next
// movement for the same product, and the product's StockActual always equals
// the StockNuevo of its most recent movement.
type MovimientoKardex struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Cantidad      int       `gorm:"not null"` // always positive; direction comes from Tipo
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Referencia    *string
	Notas         *string
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoKardex) TableName() string { return "movimientos_kardex" }

// DireccionMovimiento returns +1 for stock-adding types, -1 for
// stock-subtracting types, and 0 for an unrecognized type.
func DireccionMovimiento(tipo string) int {
	switch tipo {
	case MovEntrada, MovCompra, MovAjusteEntrada:
		return 1
	case MovSalida, MovVenta, MovAjusteSalida:
		return -1
	default:
		return 0
	}
}
