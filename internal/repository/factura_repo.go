package repository

import (
	"context"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	Create(ctx context.Context, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Worker support
	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error
	MarkFallo(ctx context.Context, id uuid.UUID, lastError string, nextRetry *time.Time) error
	ListPendientesRetry(ctx context.Context, ahora time.Time, limit int) ([]model.Factura, error)
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Pedido").First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Preload("Cliente").Where("pedido_id = ?", pedidoID).First(&f).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter) ([]model.Factura, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Factura{}).Preload("Cliente")
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
	var facturas []model.Factura
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *facturaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Factura{}, id).Error
}

func (r *facturaRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).Updates(map[string]interface{}{
		"pdf_path":      path,
		"next_retry_at": nil,
		"last_error":    nil,
	}).Error
}

func (r *facturaRepo) MarkFallo(ctx context.Context, id uuid.UUID, lastError string, nextRetry *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).Updates(map[string]interface{}{
		"retry_count":   gorm.Expr("retry_count + 1"),
		"next_retry_at": nextRetry,
		"last_error":    lastError,
	}).Error
}

func (r *facturaRepo) ListPendientesRetry(ctx context.Context, ahora time.Time, limit int) ([]model.Factura, error) {
	var facturas []model.Factura
	err := r.db.WithContext(ctx).Preload("Cliente").
		Where("pdf_path IS NULL AND next_retry_at IS NOT NULL AND next_retry_at <= ?", ahora).
		Order("next_retry_at ASC").Limit(limit).Find(&facturas).Error
	return facturas, err
}
