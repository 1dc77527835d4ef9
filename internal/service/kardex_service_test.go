package service

import (
	"context"
	"testing"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKardexFixture() (*stubKardexRepo, *stubProductoRepo, KardexService) {
	kardexRepo := &stubKardexRepo{}
	productoRepo := newStubProductoRepo()
	svc := NewKardexService(kardexRepo, productoRepo, func(movs []model.MovimientoKardex) ([]byte, error) {
		return []byte("xlsx"), nil
	})
	return kardexRepo, productoRepo, svc
}

func TestRegistrarMovimiento_EntradaYSalida(t *testing.T) {
	kardexRepo, productoRepo, svc := newKardexFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Bolso tejido", Precio: decimal.NewFromInt(50000), StockActual: 0, Activo: true})
	usuarioID := uuid.New()

	resp, err := svc.RegistrarMovimiento(context.Background(), usuarioID, dto.RegistrarMovimientoRequest{
		ProductoID: producto.ID.String(), Tipo: model.MovEntrada, Cantidad: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockAnterior)
	assert.Equal(t, 5, resp.StockNuevo)
	assert.Equal(t, 5, producto.StockActual)

	resp, err = svc.RegistrarMovimiento(context.Background(), usuarioID, dto.RegistrarMovimientoRequest{
		ProductoID: producto.ID.String(), Tipo: model.MovVenta, Cantidad: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.StockAnterior)
	assert.Equal(t, 2, resp.StockNuevo)
	assert.Equal(t, 2, producto.StockActual)

	require.Len(t, kardexRepo.movimientos, 2)
}

func TestRegistrarMovimiento_RechazaStockNegativo(t *testing.T) {
	kardexRepo, productoRepo, svc := newKardexFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Canasta", StockActual: 2, Activo: true})

	_, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.RegistrarMovimientoRequest{
		ProductoID: producto.ID.String(), Tipo: model.MovSalida, Cantidad: 5,
	})
	require.ErrorIs(t, err, ErrStockInsuficiente)

	// Nada persistido: ni movimiento ni cambio de stock
	assert.Empty(t, kardexRepo.movimientos)
	assert.Equal(t, 2, producto.StockActual)
}

func TestRegistrarMovimiento_TipoYCantidadInvalidos(t *testing.T) {
	_, productoRepo, svc := newKardexFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Aretes", StockActual: 10, Activo: true})

	_, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.RegistrarMovimientoRequest{
		ProductoID: producto.ID.String(), Tipo: "prestamo", Cantidad: 1,
	})
	assert.ErrorIs(t, err, ErrMovimientoInvalido)

	_, err = svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.RegistrarMovimientoRequest{
		ProductoID: producto.ID.String(), Tipo: model.MovEntrada, Cantidad: 0,
	})
	assert.ErrorIs(t, err, ErrMovimientoInvalido)
}

func TestRegistrarMovimiento_EncadenaStocks(t *testing.T) {
	kardexRepo, productoRepo, svc := newKardexFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Hamaca", StockActual: 0, Activo: true})
	usuarioID := uuid.New()

	pasos := []struct {
		tipo     string
		cantidad int
	}{
		{model.MovEntrada, 10},
		{model.MovVenta, 4},
		{model.MovAjusteSalida, 1},
		{model.MovCompra, 7},
	}
	for _, paso := range pasos {
		_, err := svc.RegistrarMovimiento(context.Background(), usuarioID, dto.RegistrarMovimientoRequest{
			ProductoID: producto.ID.String(), Tipo: paso.tipo, Cantidad: paso.cantidad,
		})
		require.NoError(t, err)
	}

	// StockNuevo de cada movimiento == StockAnterior del siguiente
	movs := kardexRepo.movimientos
	require.Len(t, movs, 4)
	for i := 1; i < len(movs); i++ {
		assert.Equal(t, movs[i-1].StockNuevo, movs[i].StockAnterior)
	}

	// El stock del producto es la suma con signo de todos los movimientos
	suma := 0
	for _, m := range movs {
		suma += model.DireccionMovimiento(m.Tipo) * m.Cantidad
	}
	assert.Equal(t, suma, producto.StockActual)
	assert.Equal(t, movs[len(movs)-1].StockNuevo, producto.StockActual)
}

func TestMovimientos_PorProductoMasRecientePrimero(t *testing.T) {
	_, productoRepo, svc := newKardexFixture()
	a := productoRepo.agregar(&model.Producto{Nombre: "A", StockActual: 0, Activo: true})
	b := productoRepo.agregar(&model.Producto{Nombre: "B", StockActual: 0, Activo: true})
	usuarioID := uuid.New()

	for _, p := range []uuid.UUID{a.ID, b.ID, a.ID} {
		_, err := svc.RegistrarMovimiento(context.Background(), usuarioID, dto.RegistrarMovimientoRequest{
			ProductoID: p.String(), Tipo: model.MovEntrada, Cantidad: 1,
		})
		require.NoError(t, err)
	}

	movs, err := svc.Movimientos(context.Background(), &a.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	// historial de un producto: más reciente primero
	assert.Equal(t, 2, movs[0].StockNuevo)
	assert.Equal(t, 1, movs[1].StockNuevo)

	todos, err := svc.Movimientos(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestExistencias_Valorizacion(t *testing.T) {
	_, productoRepo, svc := newKardexFixture()
	productoRepo.agregar(&model.Producto{Nombre: "Bolso", Precio: decimal.NewFromInt(50000), StockActual: 3, Activo: true})
	productoRepo.agregar(&model.Producto{Nombre: "Manta", Precio: decimal.NewFromInt(120000), StockActual: 1, Activo: true})
	productoRepo.agregar(&model.Producto{Nombre: "Retirado", Precio: decimal.NewFromInt(99999), StockActual: 9, Activo: false})

	resp, err := svc.Existencias(context.Background())
	require.NoError(t, err)

	// productos inactivos quedan fuera del reporte
	assert.Equal(t, 2, resp.TotalProductos)
	assert.Equal(t, 4, resp.TotalUnidades)
	assert.True(t, resp.ValorTotal.Equal(decimal.NewFromInt(270000)), "valor total %s", resp.ValorTotal)
}

func TestExportarExcel_UsaElExportador(t *testing.T) {
	_, _, svc := newKardexFixture()
	data, err := svc.ExportarExcel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
}
