package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Categoria   string          `json:"categoria" validate:"required"`
	Descripcion *string         `json:"descripcion"`
	Imagen      *string         `json:"imagen"`
	Precio      decimal.Decimal `json:"precio" validate:"required,gt=0"`
	IVAPct      decimal.Decimal `json:"iva_pct" validate:"min=0,max=100"`
	// StockInicial seeds the kardex with an `entrada` movement; stock is never
	// edited through product updates afterwards.
	StockInicial int `json:"stock_inicial" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      string           `json:"nombre"`
	Categoria   string           `json:"categoria"`
	Descripcion *string          `json:"descripcion"`
	Imagen      *string          `json:"imagen"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
	IVAPct      *decimal.Decimal `json:"iva_pct" validate:"omitempty,min=0,max=100"`
}

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "false" | "all" | default: activos
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Imagen      *string         `json:"imagen,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	IVAPct      decimal.Decimal `json:"iva_pct"`
	Stock       int             `json:"stock"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
