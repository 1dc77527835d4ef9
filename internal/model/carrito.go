package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarritoItem snapshots what the operator needs to display and price a line
// while the cart is open. Precio and IVAPct are copied from the product at
// the moment of addition; stock checks always go against the live product.
type CarritoItem struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	IVAPct     decimal.Decimal `json:"iva_pct"`
	Cantidad   int             `json:"cantidad"`
}

// Carrito is the per-user cart snapshot. It is not a durable entity: it lives
// in Redis for crash recovery and is discarded on checkout.
type Carrito struct {
	Items []CarritoItem `json:"items"`
}

// Buscar returns the index of the item for productoID, or -1.
func (c *Carrito) Buscar(productoID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductoID == productoID {
			return i
		}
	}
	return -1
}
