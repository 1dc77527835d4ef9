package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Checkout stage cursor values, in order. A pedido stuck before
// EtapaCompletado is a partial checkout that needs manual reconciliation.
const (
	EtapaCreado     = "creado"
	EtapaLineas     = "lineas"
	EtapaFacturado  = "facturado"
	EtapaCompletado = "completado"
)

// Pedido estados.
const (
	PedidoPendiente  = "pendiente"
	PedidoCompletado = "completado"
	PedidoEnviado    = "enviado"
	PedidoCancelado  = "cancelado"
)

// Pedido is created once per checkout. After creation only Estado (and the
// Etapa cursor during the checkout workflow itself) may change.
type Pedido struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Estado    string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Etapa     string    `gorm:"type:varchar(20);not null;default:'creado'"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente      `gorm:"foreignKey:ClienteID"`
	Lineas  []LineaPedido `gorm:"foreignKey:PedidoID"`
}

// LineaPedido snapshots quantity and unit price at the moment of sale.
// Immutable once created: later product price changes do not touch it.
type LineaPedido struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (LineaPedido) TableName() string { return "lineas_pedido" }
