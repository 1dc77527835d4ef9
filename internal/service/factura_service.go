package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
)

type FacturaService interface {
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	ObtenerPorPedido(ctx context.Context, pedidoID uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error)
}

type facturaService struct {
	repo repository.FacturaRepository
}

func NewFacturaService(repo repository.FacturaRepository) FacturaService {
	return &facturaService{repo: repo}
}

func (s *facturaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("factura no encontrada")
	}
	return facturaToResponse(f), nil
}

func (s *facturaService) ObtenerPorPedido(ctx context.Context, pedidoID uuid.UUID) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByPedidoID(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("factura no encontrada para el pedido %s", pedidoID)
	}
	return facturaToResponse(f), nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	facturas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacturaResponse, 0, len(facturas))
	for i := range facturas {
		items = append(items, *facturaToResponse(&facturas[i]))
	}
	return &dto.FacturaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CambiarEstado only admits pendiente → pagada; a paid invoice stays paid.
func (s *facturaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("factura no encontrada")
	}
	if f.Estado == model.FacturaPagada && estado == model.FacturaPendiente {
		return errors.New("una factura pagada no puede volver a pendiente")
	}
	return s.repo.UpdateEstado(ctx, id, estado)
}

func (s *facturaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("factura no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func (s *facturaService) ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("factura no encontrada")
	}
	if f.PDFPath == nil || *f.PDFPath == "" {
		return "", errors.New("PDF no disponible todavía")
	}
	return *f.PDFPath, nil
}

func facturaToResponse(f *model.Factura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:        f.ID.String(),
		PedidoID:  f.PedidoID.String(),
		ClienteID: f.ClienteID.String(),
		Subtotal:  f.Subtotal,
		IVA:       f.IVA,
		Envio:     f.Envio,
		Total:     f.Total,
		Estado:    f.Estado,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
	if f.Cliente != nil {
		resp.Cliente = f.Cliente.Nombre
	}
	if f.PDFPath != nil && *f.PDFPath != "" {
		u := "/v1/facturas/" + f.ID.String() + "/pdf"
		resp.PDFUrl = &u
	}
	return resp
}
