package service

import (
	"context"
	"fmt"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
)

// CarritoService manages the per-user cart snapshot. The quantity-vs-stock
// invariant is enforced at every mutation, not just at checkout.
type CarritoService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID, envioRaw string) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	ActualizarCantidad(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID, cantidad int) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.CarritoResponse, error)
	Vaciar(ctx context.Context, usuarioID uuid.UUID) error
}

type carritoService struct {
	repo         repository.CarritoRepository
	productoRepo repository.ProductoRepository
}

func NewCarritoService(repo repository.CarritoRepository, productoRepo repository.ProductoRepository) CarritoService {
	return &carritoService{repo: repo, productoRepo: productoRepo}
}

func (s *carritoService) Obtener(ctx context.Context, usuarioID uuid.UUID, envioRaw string) (*dto.CarritoResponse, error) {
	carrito, err := s.repo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return carritoToResponse(carrito, envioRaw), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, usuarioID uuid.UUID, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("producto_id inválido: %w", err)
	}

	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	if !producto.Activo {
		return nil, fmt.Errorf("el producto %s está inactivo", producto.Nombre)
	}

	carrito, err := s.repo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	// Adding an existing product accumulates; the stock check always runs
	// against the accumulated quantity.
	nuevaCantidad := req.Cantidad
	idx := carrito.Buscar(productoID)
	if idx >= 0 {
		nuevaCantidad += carrito.Items[idx].Cantidad
	}
	if nuevaCantidad > producto.StockActual {
		return nil, fmt.Errorf("stock insuficiente para %s: disponible %d, solicitado %d",
			producto.Nombre, producto.StockActual, nuevaCantidad)
	}

	if idx >= 0 {
		carrito.Items[idx].Cantidad = nuevaCantidad
	} else {
		carrito.Items = append(carrito.Items, model.CarritoItem{
			ProductoID: producto.ID,
			Nombre:     producto.Nombre,
			Precio:     producto.Precio,
			IVAPct:     producto.IVAPct,
			Cantidad:   req.Cantidad,
		})
	}

	if err := s.repo.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito, ""), nil
}

func (s *carritoService) ActualizarCantidad(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID, cantidad int) (*dto.CarritoResponse, error) {
	if cantidad < 1 {
		return nil, fmt.Errorf("la cantidad debe ser al menos 1")
	}

	carrito, err := s.repo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	idx := carrito.Buscar(productoID)
	if idx < 0 {
		return nil, fmt.Errorf("el producto no está en el carrito")
	}

	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto no encontrado")
	}
	if cantidad > producto.StockActual {
		return nil, fmt.Errorf("stock insuficiente para %s: disponible %d, solicitado %d",
			producto.Nombre, producto.StockActual, cantidad)
	}

	carrito.Items[idx].Cantidad = cantidad
	if err := s.repo.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito, ""), nil
}

func (s *carritoService) QuitarItem(ctx context.Context, usuarioID uuid.UUID, productoID uuid.UUID) (*dto.CarritoResponse, error) {
	carrito, err := s.repo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	idx := carrito.Buscar(productoID)
	if idx < 0 {
		return nil, fmt.Errorf("el producto no está en el carrito")
	}
	carrito.Items = append(carrito.Items[:idx], carrito.Items[idx+1:]...)

	if err := s.repo.Save(ctx, usuarioID, carrito); err != nil {
		return nil, err
	}
	return carritoToResponse(carrito, ""), nil
}

func (s *carritoService) Vaciar(ctx context.Context, usuarioID uuid.UUID) error {
	return s.repo.Clear(ctx, usuarioID)
}

func carritoToResponse(c *model.Carrito, envioRaw string) *dto.CarritoResponse {
	envio := ParseEnvio(envioRaw)
	totales := CalcularTotales(c.Items, envio)

	items := make([]dto.CarritoItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, dto.CarritoItemResponse{
			ProductoID: item.ProductoID.String(),
			Nombre:     item.Nombre,
			Precio:     item.Precio,
			IVAPct:     item.IVAPct,
			Cantidad:   item.Cantidad,
			Subtotal:   LineaSubtotal(item),
		})
	}
	return &dto.CarritoResponse{
		Items:    items,
		Subtotal: totales.Subtotal,
		IVA:      totales.IVA,
		Envio:    totales.Envio,
		Total:    totales.Total,
	}
}
