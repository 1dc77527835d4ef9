package dto

import "github.com/shopspring/decimal"

type RegistrarMovimientoRequest struct {
	ProductoID string  `json:"producto_id" validate:"required,uuid"`
	Tipo       string  `json:"tipo" validate:"required,oneof=entrada salida compra venta ajuste_entrada ajuste_salida"`
	Cantidad   int     `json:"cantidad" validate:"required,min=1"`
	Referencia *string `json:"referencia"`
	Notas      *string `json:"notas"`
}

type MovimientoResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto,omitempty"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Referencia    *string `json:"referencia,omitempty"`
	Notas         *string `json:"notas,omitempty"`
	UsuarioID     string  `json:"usuario_id"`
	CreatedAt     string  `json:"created_at"`
}

type ExistenciaResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Categoria  string          `json:"categoria"`
	Stock      int             `json:"stock"`
	Precio     decimal.Decimal `json:"precio"`
	Valorizado decimal.Decimal `json:"valorizado"`
}

type ExistenciasResponse struct {
	Productos      []ExistenciaResponse `json:"productos"`
	TotalProductos int                  `json:"total_productos"`
	TotalUnidades  int                  `json:"total_unidades"`
	ValorTotal     decimal.Decimal      `json:"valor_total"`
}
