package service

import (
	"testing"

	"minegocio/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestParseEnvio(t *testing.T) {
	assert.True(t, ParseEnvio("").IsZero())
	assert.True(t, ParseEnvio("   ").IsZero())
	assert.True(t, ParseEnvio("abc").IsZero())
	assert.True(t, ParseEnvio("-500").IsZero())
	assert.True(t, ParseEnvio("10000").Equal(d("10000")))
	assert.True(t, ParseEnvio(" 150.50 ").Equal(d("150.50")))
}

func TestPrecioSinIVA(t *testing.T) {
	// Sin IVA el precio no cambia
	assert.True(t, PrecioSinIVA(d("280000"), decimal.Zero).Equal(d("280000")))

	// 1000 con 19% embebido → 840.3361
	sinIVA := PrecioSinIVA(d("1000"), d("19"))
	assert.True(t, sinIVA.Equal(d("840.3361")), "got %s", sinIVA)
}

func TestCalcularTotales_ProductoExento(t *testing.T) {
	items := []model.CarritoItem{
		{ProductoID: uuid.New(), Nombre: "Mochila artesanal", Precio: d("280000"), IVAPct: decimal.Zero, Cantidad: 1},
	}
	tot := CalcularTotales(items, d("10000"))

	assert.True(t, tot.Subtotal.Equal(d("280000")), "subtotal %s", tot.Subtotal)
	assert.True(t, tot.IVA.IsZero(), "iva %s", tot.IVA)
	assert.True(t, tot.Envio.Equal(d("10000")))
	assert.True(t, tot.Total.Equal(d("290000")), "total %s", tot.Total)
}

func TestCalcularTotales_CarritoVacio(t *testing.T) {
	tot := CalcularTotales(nil, d("5000"))
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.IVA.IsZero())
	assert.True(t, tot.Total.Equal(d("5000")), "un carrito vacío solo cobra el envío")
}

func TestCalcularTotales_TotalSigueLosPreciosConIVA(t *testing.T) {
	// El total es siempre Σ precio×cantidad + envío, sin importar las tasas.
	items := []model.CarritoItem{
		{ProductoID: uuid.New(), Precio: d("1000"), IVAPct: d("19"), Cantidad: 2},
		{ProductoID: uuid.New(), Precio: d("3500"), IVAPct: d("5"), Cantidad: 1},
		{ProductoID: uuid.New(), Precio: d("200"), IVAPct: decimal.Zero, Cantidad: 3},
	}
	tot := CalcularTotales(items, d("800"))

	// 2000 + 3500 + 600 + 800
	assert.True(t, tot.Total.Equal(d("6900")), "total %s", tot.Total)

	// El desglose sin impuesto es menor que el bruto cuando hay IVA
	assert.True(t, tot.Subtotal.LessThan(d("6100")))
	assert.True(t, tot.IVA.IsPositive())
}

func TestCalcularTotales_LineasMultiplicanCantidad(t *testing.T) {
	item := model.CarritoItem{ProductoID: uuid.New(), Precio: d("2500"), IVAPct: decimal.Zero, Cantidad: 4}
	assert.True(t, LineaSubtotal(item).Equal(d("10000")))

	tot := CalcularTotales([]model.CarritoItem{item}, decimal.Zero)
	assert.True(t, tot.Total.Equal(d("10000")))
	assert.True(t, tot.Subtotal.Equal(d("10000")))
}
