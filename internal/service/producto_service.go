package service

import (
	"context"
	"errors"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoService is catalog CRUD. Stock is intentionally absent from the
// update path: it only changes through kardex movements.
type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo   repository.ProductoRepository
	kardex KardexService
}

func NewProductoService(repo repository.ProductoRepository, kardex KardexService) ProductoService {
	return &productoService{repo: repo, kardex: kardex}
}

func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	iva := req.IVAPct
	if iva.IsNegative() {
		iva = decimal.Zero
	}
	producto := &model.Producto{
		Nombre:      req.Nombre,
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
		Imagen:      req.Imagen,
		Precio:      req.Precio,
		IVAPct:      iva,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}

	// The opening stock enters through the ledger so the kardex invariant
	// (stock == last movement's stock_nuevo) holds from day one.
	if req.StockInicial > 0 {
		notas := "stock inicial"
		if _, err := s.kardex.RegistrarMovimiento(ctx, usuarioID, dto.RegistrarMovimientoRequest{
			ProductoID: producto.ID.String(),
			Tipo:       model.MovEntrada,
			Cantidad:   req.StockInicial,
			Notas:      &notas,
		}); err != nil {
			return nil, err
		}
		producto.StockActual = req.StockInicial
	}

	return productoToResponse(producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != "" {
		producto.Nombre = req.Nombre
	}
	if req.Categoria != "" {
		producto.Categoria = req.Categoria
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.Imagen != nil {
		producto.Imagen = req.Imagen
	}
	if req.Precio != nil {
		producto.Precio = *req.Precio
	}
	if req.IVAPct != nil {
		producto.IVAPct = *req.IVAPct
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Descripcion: p.Descripcion,
		Imagen:      p.Imagen,
		Precio:      p.Precio,
		IVAPct:      p.IVAPct,
		Stock:       p.StockActual,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
