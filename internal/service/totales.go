package service

import (
	"strings"

	"minegocio/internal/model"

	"github.com/shopspring/decimal"
)

// Totales is the full monetary derivation for a cart.
//
// Total deliberately follows the tax-inclusive path (Σ precio×cantidad +
// envio) rather than Subtotal + IVA + Envio. Product prices already include
// IVA; Subtotal and IVA are the ex-tax split persisted on the factura for
// reporting. The two derivations only coincide when every IVA rate is 0.
type Totales struct {
	Subtotal decimal.Decimal // ex-tax
	IVA      decimal.Decimal
	Envio    decimal.Decimal
	Total    decimal.Decimal // tax-inclusive line sums + envio
}

var cien = decimal.NewFromInt(100)

// ParseEnvio interprets the operator-entered shipping field. Empty,
// non-numeric or negative input clamps to 0 — shipping never fails.
func ParseEnvio(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	envio, err := decimal.NewFromString(raw)
	if err != nil || envio.IsNegative() {
		return decimal.Zero
	}
	return envio
}

// PrecioSinIVA removes the embedded tax from a tax-inclusive price:
// precio / (1 + iva/100). A zero rate returns the price unchanged.
func PrecioSinIVA(precio, ivaPct decimal.Decimal) decimal.Decimal {
	if !ivaPct.IsPositive() {
		return precio
	}
	divisor := decimal.NewFromInt(1).Add(ivaPct.Div(cien))
	return precio.DivRound(divisor, 4)
}

// LineaSubtotal is the tax-inclusive display subtotal for one cart item.
func LineaSubtotal(item model.CarritoItem) decimal.Decimal {
	return item.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
}

// CalcularTotales derives all cart totals. Pure: no side effects, no errors.
func CalcularTotales(items []model.CarritoItem, envio decimal.Decimal) Totales {
	subtotal := decimal.Zero
	iva := decimal.Zero
	bruto := decimal.Zero

	for _, item := range items {
		cantidad := decimal.NewFromInt(int64(item.Cantidad))
		sinIVA := PrecioSinIVA(item.Precio, item.IVAPct)

		subtotal = subtotal.Add(sinIVA.Mul(cantidad))
		if item.IVAPct.IsPositive() {
			iva = iva.Add(sinIVA.Mul(item.IVAPct).Div(cien).Mul(cantidad))
		}
		bruto = bruto.Add(LineaSubtotal(item))
	}

	return Totales{
		Subtotal: subtotal.Round(2),
		IVA:      iva.Round(2),
		Envio:    envio,
		Total:    bruto.Add(envio).Round(2),
	}
}
