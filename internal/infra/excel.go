package infra

// excel.go — kardex ledger export using excelize.
// One row per movement, chronological, with a bold header row.

import (
	"fmt"

	"minegocio/internal/model"

	"github.com/xuri/excelize/v2"
)

const kardexSheet = "Kardex"

// GenerarKardexExcel renders the full movement ledger as an .xlsx document.
func GenerarKardexExcel(movs []model.MovimientoKardex) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", kardexSheet)

	headers := []string{"Fecha", "Producto", "Tipo", "Cantidad", "Stock anterior", "Stock nuevo", "Referencia", "Notas"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(kardexSheet, cell, h); err != nil {
			return nil, err
		}
	}

	estiloHeader, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(kardexSheet, "A1", "H1", estiloHeader)
	}

	for i, mov := range movs {
		fila := i + 2
		nombre := ""
		if mov.Producto != nil {
			nombre = mov.Producto.Nombre
		}
		referencia := ""
		if mov.Referencia != nil {
			referencia = *mov.Referencia
		}
		notas := ""
		if mov.Notas != nil {
			notas = *mov.Notas
		}

		valores := []interface{}{
			mov.CreatedAt.Format("02/01/2006 15:04"),
			nombre,
			mov.Tipo,
			mov.Cantidad,
			mov.StockAnterior,
			mov.StockNuevo,
			referencia,
			notas,
		}
		for col, v := range valores {
			cell, err := excelize.CoordinatesToCellName(col+1, fila)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(kardexSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write buffer: %w", err)
	}
	return buf.Bytes(), nil
}
