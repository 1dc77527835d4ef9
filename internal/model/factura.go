package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factura estados.
const (
	FacturaPendiente = "pendiente"
	FacturaPagada    = "pagada"
)

// Factura is created exactly once per pedido at checkout time.
//
// Subtotal and IVA follow the ex-tax derivation while Total is the sum of
// tax-inclusive line subtotals plus Envio. The two paths are intentionally
// kept separate (they only coincide when every product has IVA 0).
type Factura struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IVA       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:iva"`
	Envio     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// PDFPath is relative to PDF_STORAGE_PATH; set by the factura worker.
	PDFPath *string `gorm:"column:pdf_path"`
	// Retry fields — used by the retry cron to re-attempt failed PDF/email jobs
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Pedido  *Pedido  `gorm:"foreignKey:PedidoID"`
	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}
