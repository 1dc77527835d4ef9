package service

import (
	"context"
	"errors"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
)

// PedidoService covers the read side and the status transitions of orders.
// Orders are created exclusively by the checkout workflow; after that only
// Estado changes — no field edits, and lines are immutable.
type PedidoService interface {
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ListarLineas(ctx context.Context, pedidoID uuid.UUID) ([]dto.LineaPedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type pedidoService struct {
	repo repository.PedidoRepository
}

func NewPedidoService(repo repository.PedidoRepository) PedidoService {
	return &pedidoService{repo: repo}
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		items = append(items, *pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) ListarLineas(ctx context.Context, pedidoID uuid.UUID) ([]dto.LineaPedidoResponse, error) {
	lineas, err := s.repo.ListLineas(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LineaPedidoResponse, 0, len(lineas))
	for i := range lineas {
		resp = append(resp, lineaToResponse(&lineas[i]))
	}
	return resp, nil
}

func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pedido no encontrado")
	}
	if pedido.Estado == model.PedidoCancelado {
		return errors.New("un pedido cancelado no puede cambiar de estado")
	}
	return s.repo.UpdateEstado(ctx, id, estado)
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:        p.ID.String(),
		ClienteID: p.ClienteID.String(),
		Estado:    p.Estado,
		Etapa:     p.Etapa,
		Total:     p.Total,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.Nombre
	}
	for i := range p.Lineas {
		resp.Lineas = append(resp.Lineas, lineaToResponse(&p.Lineas[i]))
	}
	return resp
}

func lineaToResponse(l *model.LineaPedido) dto.LineaPedidoResponse {
	nombre := ""
	if l.Producto != nil {
		nombre = l.Producto.Nombre
	}
	return dto.LineaPedidoResponse{
		ID:             l.ID.String(),
		ProductoID:     l.ProductoID.String(),
		Producto:       nombre,
		Cantidad:       l.Cantidad,
		PrecioUnitario: l.PrecioUnitario,
		Subtotal:       l.Subtotal,
	}
}
