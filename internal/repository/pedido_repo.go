package repository

import (
	"context"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	CreateLinea(ctx context.Context, l *model.LineaPedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	ListLineas(ctx context.Context, pedidoID uuid.UUID) ([]model.LineaPedido, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateEtapa(ctx context.Context, id uuid.UUID, etapa string) error
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) CreateLinea(ctx context.Context, l *model.LineaPedido) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Lineas").
		Preload("Lineas.Producto").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{}).Preload("Cliente")
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var pedidos []model.Pedido
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) ListLineas(ctx context.Context, pedidoID uuid.UUID) ([]model.LineaPedido, error) {
	var lineas []model.LineaPedido
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("pedido_id = ?", pedidoID).Order("created_at ASC").Find(&lineas).Error
	return lineas, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *pedidoRepo) UpdateEtapa(ctx context.Context, id uuid.UUID, etapa string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("etapa", etapa).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
