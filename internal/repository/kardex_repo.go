package repository

import (
	"context"

	"minegocio/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KardexRepository is append-only: movements are never updated or deleted.
type KardexRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoKardex) error
	// ListByProducto returns a single product's history, most recent first.
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.MovimientoKardex, error)
	// ListAll returns the full ledger in chronological order (for export).
	ListAll(ctx context.Context) ([]model.MovimientoKardex, error)
}

type kardexRepo struct{ db *gorm.DB }

func NewKardexRepository(db *gorm.DB) KardexRepository { return &kardexRepo{db: db} }

func (r *kardexRepo) CreateTx(tx *gorm.DB, m *model.MovimientoKardex) error {
	return tx.Create(m).Error
}

func (r *kardexRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.MovimientoKardex, error) {
	var movs []model.MovimientoKardex
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("producto_id = ?", productoID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *kardexRepo) ListAll(ctx context.Context) ([]model.MovimientoKardex, error) {
	var movs []model.MovimientoKardex
	err := r.db.WithContext(ctx).Preload("Producto").
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}
