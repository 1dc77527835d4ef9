package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// A5 portrait layout:
//   - Business name header + invoice id fragment and issue date
//   - Client block (name, city, email)
//   - Line-item table (product, quantity, unit price, subtotal)
//   - Totals block: subtotal (ex-IVA), IVA, envío, bold total
//
// The output file is saved to storagePath/factura_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"minegocio/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarFacturaPDF renders the invoice for a completed checkout.
// Returns the absolute path of the generated file.
func GenerarFacturaPDF(factura *model.Factura, lineas []model.LineaPedido, nombreNegocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("factura_%s.pdf", factura.ID.String()[:8])
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, nombreNegocio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Factura de venta", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Factura #%s", factura.ID.String()[:8]), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, factura.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	// ── Client ───────────────────────────────────────────────────────────────
	if factura.Cliente != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Cliente: "+factura.Cliente.Nombre, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "Ciudad: "+factura.Cliente.Ciudad, "", 1, "L", false, 0, "")
		if factura.Cliente.Email != nil {
			pdf.CellFormat(contentW, 5, "Email: "+*factura.Cliente.Email, "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Line items ───────────────────────────────────────────────────────────
	col1 := contentW * 0.42 // product name
	col2 := contentW * 0.13 // qty
	col3 := contentW * 0.22 // unit price
	col4 := contentW * 0.23 // subtotal

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "P. Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, linea := range lineas {
		nombre := ""
		if linea.Producto != nil {
			nombre = linea.Producto.Nombre
		}
		if len(nombre) > 28 {
			nombre = nombre[:27] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", linea.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+linea.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "$"+linea.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(labelW, 5, "Subtotal (sin IVA):", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+factura.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 5, "IVA:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+factura.IVA.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 5, "Envío:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+factura.Envio.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+factura.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Gracias por su compra", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
