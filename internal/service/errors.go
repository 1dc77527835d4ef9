package service

import "errors"

// Sentinel errors shared across services. Messages are user-facing.
var (
	ErrCarritoVacio       = errors.New("el carrito está vacío")
	ErrSinCliente         = errors.New("debe seleccionar un cliente para confirmar la compra")
	ErrStockInsuficiente  = errors.New("stock insuficiente: el movimiento dejaría el stock en negativo")
	ErrMovimientoInvalido = errors.New("movimiento inválido: tipo desconocido o cantidad menor a 1")
	ErrAdminProtegido     = errors.New("el administrador principal no puede ser modificado ni eliminado")
	ErrCredenciales       = errors.New("credenciales invalidas")
)
