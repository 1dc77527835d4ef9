package dto

import "github.com/shopspring/decimal"

type AgregarItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

type ActualizarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type CarritoItemResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	IVAPct     decimal.Decimal `json:"iva_pct"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// CarritoResponse carries both total derivations: Total follows the
// tax-inclusive line sums plus Envio, while Subtotal/IVA are the ex-tax split.
type CarritoResponse struct {
	Items    []CarritoItemResponse `json:"items"`
	Subtotal decimal.Decimal       `json:"subtotal"`
	IVA      decimal.Decimal       `json:"iva"`
	Envio    decimal.Decimal       `json:"envio"`
	Total    decimal.Decimal       `json:"total"`
}
