package service

import (
	"context"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KardexService maintains the append-only movement ledger and its derived
// views. Every recorded movement is immediately and permanently applied to
// the product's stock; there is no pending state.
type KardexService interface {
	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	Existencias(ctx context.Context) (*dto.ExistenciasResponse, error)
	Movimientos(ctx context.Context, productoID *uuid.UUID) ([]dto.MovimientoResponse, error)
	ExportarExcel(ctx context.Context) ([]byte, error)
}

// ExcelExporter renders the full ledger to an .xlsx document.
type ExcelExporter func(movs []model.MovimientoKardex) ([]byte, error)

type kardexService struct {
	repo         repository.KardexRepository
	productoRepo repository.ProductoRepository
	exporter     ExcelExporter
}

func NewKardexService(repo repository.KardexRepository, productoRepo repository.ProductoRepository, exporter ExcelExporter) KardexService {
	return &kardexService{repo: repo, productoRepo: productoRepo, exporter: exporter}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// RegistrarMovimiento appends a movement and applies it to the product stock
// in one transaction. A subtracting movement that would drive stock negative
// is rejected before anything is persisted.
func (s *kardexService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	direccion := model.DireccionMovimiento(req.Tipo)
	if direccion == 0 || req.Cantidad < 1 {
		return nil, ErrMovimientoInvalido
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, ErrMovimientoInvalido
	}

	var mov model.MovimientoKardex
	var nombreProducto string
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		producto, err := s.findProducto(ctx, tx, productoID)
		if err != nil {
			return err
		}
		nombreProducto = producto.Nombre

		delta := direccion * req.Cantidad
		stockNuevo := producto.StockActual + delta
		if stockNuevo < 0 {
			return ErrStockInsuficiente
		}

		mov = model.MovimientoKardex{
			ProductoID:    productoID,
			Tipo:          req.Tipo,
			Cantidad:      req.Cantidad,
			StockAnterior: producto.StockActual,
			StockNuevo:    stockNuevo,
			Referencia:    req.Referencia,
			Notas:         req.Notas,
			UsuarioID:     usuarioID,
			CreatedAt:     time.Now(),
		}
		if err := s.repo.CreateTx(tx, &mov); err != nil {
			return err
		}
		return s.updateStock(ctx, tx, productoID, delta)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimientoToResponse(&mov)
	resp.Producto = nombreProducto
	return resp, nil
}

// findProducto and updateStock fall back to the non-tx repository methods
// when running without a DB (unit test mode keeps tx == nil).
func (s *kardexService) findProducto(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	if tx == nil {
		return s.productoRepo.FindByID(ctx, id)
	}
	return s.productoRepo.FindByIDTx(tx, id)
}

func (s *kardexService) updateStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int) error {
	if tx == nil {
		producto, err := s.productoRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		producto.StockActual += delta
		return s.productoRepo.Update(ctx, producto)
	}
	return s.productoRepo.UpdateStockTx(tx, id, delta)
}

func (s *kardexService) Existencias(ctx context.Context) (*dto.ExistenciasResponse, error) {
	productos, err := s.productoRepo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExistenciasResponse{
		Productos:  make([]dto.ExistenciaResponse, 0, len(productos)),
		ValorTotal: decimal.Zero,
	}
	for _, p := range productos {
		valorizado := p.Precio.Mul(decimal.NewFromInt(int64(p.StockActual)))
		resp.Productos = append(resp.Productos, dto.ExistenciaResponse{
			ProductoID: p.ID.String(),
			Nombre:     p.Nombre,
			Categoria:  p.Categoria,
			Stock:      p.StockActual,
			Precio:     p.Precio,
			Valorizado: valorizado,
		})
		resp.TotalProductos++
		resp.TotalUnidades += p.StockActual
		resp.ValorTotal = resp.ValorTotal.Add(valorizado)
	}
	return resp, nil
}

func (s *kardexService) Movimientos(ctx context.Context, productoID *uuid.UUID) ([]dto.MovimientoResponse, error) {
	var movs []model.MovimientoKardex
	var err error
	if productoID != nil {
		movs, err = s.repo.ListByProducto(ctx, *productoID)
	} else {
		movs, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		item := movimientoToResponse(&movs[i])
		if movs[i].Producto != nil {
			item.Producto = movs[i].Producto.Nombre
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

func (s *kardexService) ExportarExcel(ctx context.Context) ([]byte, error) {
	movs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.exporter(movs)
}

func movimientoToResponse(m *model.MovimientoKardex) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Referencia:    m.Referencia,
		Notas:         m.Notas,
		UsuarioID:     m.UsuarioID.String(),
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
