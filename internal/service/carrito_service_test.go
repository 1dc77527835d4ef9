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

func newCarritoFixture() (*stubCarritoRepo, *stubProductoRepo, CarritoService) {
	carritoRepo := newStubCarritoRepo()
	productoRepo := newStubProductoRepo()
	return carritoRepo, productoRepo, NewCarritoService(carritoRepo, productoRepo)
}

func TestAgregarItem_AcumulaCantidad(t *testing.T) {
	_, productoRepo, svc := newCarritoFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Pulsera", Precio: d("15000"), StockActual: 10, Activo: true})
	usuarioID := uuid.New()

	_, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 2})
	require.NoError(t, err)

	resp, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Cantidad)
	assert.True(t, resp.Total.Equal(d("75000")), "total %s", resp.Total)
}

func TestAgregarItem_RechazaMasQueElStock(t *testing.T) {
	_, productoRepo, svc := newCarritoFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Sombrero", Precio: d("30000"), StockActual: 3, Activo: true})
	usuarioID := uuid.New()

	_, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 2})
	require.NoError(t, err)

	// 2 en el carrito + 2 pedidos = 4 > 3 disponibles
	_, err = svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock insuficiente")

	// El carrito no cambió
	resp, err := svc.Obtener(context.Background(), usuarioID, "")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Cantidad)
}

func TestAgregarItem_ProductoInactivo(t *testing.T) {
	_, productoRepo, svc := newCarritoFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Descontinuado", Precio: d("1000"), StockActual: 5, Activo: false})

	_, err := svc.AgregarItem(context.Background(), uuid.New(), dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestActualizarCantidad_ValidaContraStock(t *testing.T) {
	_, productoRepo, svc := newCarritoFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Tapete", Precio: d("45000"), StockActual: 4, Activo: true})
	usuarioID := uuid.New()

	_, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 1})
	require.NoError(t, err)

	_, err = svc.ActualizarCantidad(context.Background(), usuarioID, producto.ID, 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock insuficiente")

	resp, err := svc.ActualizarCantidad(context.Background(), usuarioID, producto.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Items[0].Cantidad)
}

func TestQuitarItemYVaciar(t *testing.T) {
	carritoRepo, productoRepo, svc := newCarritoFixture()
	a := productoRepo.agregar(&model.Producto{Nombre: "A", Precio: d("100"), StockActual: 10, Activo: true})
	b := productoRepo.agregar(&model.Producto{Nombre: "B", Precio: d("200"), StockActual: 10, Activo: true})
	usuarioID := uuid.New()

	_, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: a.ID.String(), Cantidad: 1})
	require.NoError(t, err)
	_, err = svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: b.ID.String(), Cantidad: 1})
	require.NoError(t, err)

	resp, err := svc.QuitarItem(context.Background(), usuarioID, a.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, b.ID.String(), resp.Items[0].ProductoID)

	require.NoError(t, svc.Vaciar(context.Background(), usuarioID))
	assert.True(t, carritoRepo.cleared[usuarioID])
}

func TestObtener_EnvioSoloAfectaElTotal(t *testing.T) {
	_, productoRepo, svc := newCarritoFixture()
	producto := productoRepo.agregar(&model.Producto{Nombre: "Mochila", Precio: d("280000"), IVAPct: decimal.Zero, StockActual: 2, Activo: true})
	usuarioID := uuid.New()

	_, err := svc.AgregarItem(context.Background(), usuarioID, dto.AgregarItemRequest{ProductoID: producto.ID.String(), Cantidad: 1})
	require.NoError(t, err)

	resp, err := svc.Obtener(context.Background(), usuarioID, "10000")
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(d("280000")))
	assert.True(t, resp.Total.Equal(d("290000")), "total %s", resp.Total)

	// El envío es solo de vista previa: no se persiste con el carrito
	resp, err = svc.Obtener(context.Background(), usuarioID, "")
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(d("280000")))
}
