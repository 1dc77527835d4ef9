package dto

import "github.com/shopspring/decimal"

type CambiarEstadoFacturaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente pagada"`
}

type FacturaResponse struct {
	ID        string          `json:"id"`
	PedidoID  string          `json:"pedido_id"`
	ClienteID string          `json:"cliente_id"`
	Cliente   string          `json:"cliente,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	IVA       decimal.Decimal `json:"iva"`
	Envio     decimal.Decimal `json:"envio"`
	Total     decimal.Decimal `json:"total"`
	Estado    string          `json:"estado"`
	PDFUrl    *string         `json:"pdf_url,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type FacturaFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}
