package service

import (
	"context"
	"errors"
	"time"

	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository implementations shared by the service tests. Services
// run with tx == nil (no DB), so runTx falls back to direct calls.

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) agregar(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.agregar(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("producto no encontrado")
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) ListActivos(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return errors.New("producto no encontrado")
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("producto no encontrado")
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("producto no encontrado")
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("producto no encontrado")
	}
	p.StockActual += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubKardexRepo struct {
	movimientos []model.MovimientoKardex
	failCreate  bool
}

func (r *stubKardexRepo) CreateTx(_ *gorm.DB, m *model.MovimientoKardex) error {
	if r.failCreate {
		return errors.New("insert fallido")
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubKardexRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.MovimientoKardex, error) {
	var out []model.MovimientoKardex
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		if r.movimientos[i].ProductoID == productoID {
			out = append(out, r.movimientos[i])
		}
	}
	return out, nil
}

func (r *stubKardexRepo) ListAll(_ context.Context) ([]model.MovimientoKardex, error) {
	return r.movimientos, nil
}

var _ repository.KardexRepository = (*stubKardexRepo)(nil)

type stubCarritoRepo struct {
	carritos map[uuid.UUID]*model.Carrito
	cleared  map[uuid.UUID]bool
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{
		carritos: make(map[uuid.UUID]*model.Carrito),
		cleared:  make(map[uuid.UUID]bool),
	}
}

func (r *stubCarritoRepo) Get(_ context.Context, usuarioID uuid.UUID) (*model.Carrito, error) {
	c, ok := r.carritos[usuarioID]
	if !ok {
		return &model.Carrito{}, nil
	}
	return c, nil
}

func (r *stubCarritoRepo) Save(_ context.Context, usuarioID uuid.UUID, c *model.Carrito) error {
	r.carritos[usuarioID] = c
	return nil
}

func (r *stubCarritoRepo) Clear(_ context.Context, usuarioID uuid.UUID) error {
	delete(r.carritos, usuarioID)
	r.cleared[usuarioID] = true
	return nil
}

var _ repository.CarritoRepository = (*stubCarritoRepo)(nil)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) agregar(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.agregar(c)
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("cliente no encontrado")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubPedidoRepo struct {
	pedidos    map[uuid.UUID]*model.Pedido
	lineas     []model.LineaPedido
	etapas     map[uuid.UUID]string
	failLineas bool
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{
		pedidos: make(map[uuid.UUID]*model.Pedido),
		etapas:  make(map[uuid.UUID]string),
	}
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pedidos[p.ID] = p
	r.etapas[p.ID] = p.Etapa
	return nil
}

func (r *stubPedidoRepo) CreateLinea(_ context.Context, l *model.LineaPedido) error {
	if r.failLineas {
		return errors.New("insert de línea fallido")
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lineas = append(r.lineas, *l)
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, errors.New("pedido no encontrado")
	}
	return p, nil
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) ListLineas(_ context.Context, pedidoID uuid.UUID) ([]model.LineaPedido, error) {
	var out []model.LineaPedido
	for _, l := range r.lineas {
		if l.PedidoID == pedidoID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	p, ok := r.pedidos[id]
	if !ok {
		return errors.New("pedido no encontrado")
	}
	p.Estado = estado
	return nil
}

func (r *stubPedidoRepo) UpdateEtapa(_ context.Context, id uuid.UUID, etapa string) error {
	p, ok := r.pedidos[id]
	if !ok {
		return errors.New("pedido no encontrado")
	}
	p.Etapa = etapa
	r.etapas[id] = etapa
	return nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

type stubFacturaRepo struct {
	facturas   map[uuid.UUID]*model.Factura
	failCreate bool
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) Create(_ context.Context, f *model.Factura) error {
	if r.failCreate {
		return errors.New("insert de factura fallido")
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, errors.New("factura no encontrada")
	}
	return f, nil
}

func (r *stubFacturaRepo) FindByPedidoID(_ context.Context, pedidoID uuid.UUID) (*model.Factura, error) {
	for _, f := range r.facturas {
		if f.PedidoID == pedidoID {
			return f, nil
		}
	}
	return nil, errors.New("factura no encontrada")
}

func (r *stubFacturaRepo) List(_ context.Context, _ dto.FacturaFilter) ([]model.Factura, int64, error) {
	out := make([]model.Factura, 0, len(r.facturas))
	for _, f := range r.facturas {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFacturaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("factura no encontrada")
	}
	f.Estado = estado
	return nil
}

func (r *stubFacturaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.facturas, id)
	return nil
}

func (r *stubFacturaRepo) SetPDFPath(_ context.Context, id uuid.UUID, path string) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("factura no encontrada")
	}
	f.PDFPath = &path
	return nil
}

func (r *stubFacturaRepo) MarkFallo(_ context.Context, id uuid.UUID, lastError string, nextRetry *time.Time) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("factura no encontrada")
	}
	f.RetryCount++
	f.LastError = &lastError
	f.NextRetryAt = nextRetry
	return nil
}

func (r *stubFacturaRepo) ListPendientesRetry(_ context.Context, _ time.Time, _ int) ([]model.Factura, error) {
	return nil, nil
}

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) agregar(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.agregar(u)
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username || (u.Email != nil && *u.Email == username) {
			return u, nil
		}
	}
	return nil, errors.New("usuario no encontrado")
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("usuario no encontrado")
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("usuario no encontrado")
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("usuario no encontrado")
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubActividadRepo struct {
	entradas  []model.ActividadEntrada
	failWrite bool
}

func (r *stubActividadRepo) Append(_ context.Context, e *model.ActividadEntrada) error {
	if r.failWrite {
		return errors.New("redis no disponible")
	}
	// most recent first, like the real LPUSH-backed log
	r.entradas = append([]model.ActividadEntrada{*e}, r.entradas...)
	return nil
}

func (r *stubActividadRepo) List(_ context.Context) ([]model.ActividadEntrada, error) {
	return r.entradas, nil
}

var _ repository.ActividadRepository = (*stubActividadRepo)(nil)

type stubDispatcher struct {
	encoladas   []interface{}
	failEnqueue bool
}

func (d *stubDispatcher) EnqueueFactura(_ context.Context, payload interface{}) error {
	if d.failEnqueue {
		return errors.New("redis no disponible")
	}
	d.encoladas = append(d.encoladas, payload)
	return nil
}

var _ FacturaDispatcher = (*stubDispatcher)(nil)
