package dto

import "github.com/shopspring/decimal"

type CheckoutRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	// Envio is free-form operator input; empty or non-numeric parses as 0.
	Envio string `json:"envio"`
}

type CheckoutResponse struct {
	Pedido  PedidoResponse  `json:"pedido"`
	Factura FacturaResponse `json:"factura"`
	Mensaje string          `json:"mensaje"`
	// LineasFallidas is set on partial failure: the pedido and factura exist
	// but these products could not be attached as lines.
	LineasFallidas []string `json:"lineas_fallidas,omitempty"`
}

type CambiarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente completado enviado cancelado"`
}

type PedidoFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type LineaPedidoResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID        string                `json:"id"`
	ClienteID string                `json:"cliente_id"`
	Cliente   string                `json:"cliente,omitempty"`
	Estado    string                `json:"estado"`
	Etapa     string                `json:"etapa"`
	Total     decimal.Decimal       `json:"total"`
	Lineas    []LineaPedidoResponse `json:"lineas,omitempty"`
	CreatedAt string                `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
