package service

import (
	"context"
	"fmt"
	"time"

	"minegocio/internal/apierror"
	"minegocio/internal/dto"
	"minegocio/internal/model"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FacturaDispatcher encola el trabajo asíncrono de facturación (PDF + email).
// *worker.Dispatcher lo implementa en producción.
type FacturaDispatcher interface {
	EnqueueFactura(ctx context.Context, payload interface{}) error
}

// CheckoutService turns a non-empty cart into a pedido + lineas + factura.
//
// The workflow is deliberately NOT one ACID transaction: each step persists
// on its own and the Etapa cursor on the pedido records how far it got
// (creado → lineas → facturado → completado), so a crash or partial failure
// leaves a precisely reportable state instead of an ambiguous one. Line
// failures are collected and surfaced as an apierror.PartialError; they are
// never rolled back and never silently swallowed.
type CheckoutService interface {
	ConfirmarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	pedidoRepo  repository.PedidoRepository
	facturaRepo repository.FacturaRepository
	clienteRepo repository.ClienteRepository
	carritoRepo repository.CarritoRepository
	kardex      KardexService
	dispatcher  FacturaDispatcher
}

func NewCheckoutService(
	pedidoRepo repository.PedidoRepository,
	facturaRepo repository.FacturaRepository,
	clienteRepo repository.ClienteRepository,
	carritoRepo repository.CarritoRepository,
	kardex KardexService,
	dispatcher FacturaDispatcher,
) CheckoutService {
	return &checkoutService{
		pedidoRepo:  pedidoRepo,
		facturaRepo: facturaRepo,
		clienteRepo: clienteRepo,
		carritoRepo: carritoRepo,
		kardex:      kardex,
		dispatcher:  dispatcher,
	}
}

func (s *checkoutService) ConfirmarCompra(ctx context.Context, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	// 1. Cart must be non-empty.
	carrito, err := s.carritoRepo.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if len(carrito.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	// 2. The client must be chosen explicitly — no silent default.
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, ErrSinCliente
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, ErrSinCliente
	}

	totales := CalcularTotales(carrito.Items, ParseEnvio(req.Envio))

	// 3. Pedido — full failure here leaves the cart intact.
	pedido := &model.Pedido{
		ClienteID: cliente.ID,
		Estado:    model.PedidoPendiente,
		Etapa:     model.EtapaCreado,
		Total:     totales.Total,
	}
	if err := s.pedidoRepo.Create(ctx, pedido); err != nil {
		return nil, fmt.Errorf("no se pudo crear el pedido: %w", err)
	}

	// 4. Lineas + kardex venta movements. Failures are collected, not rolled
	// back: the sale already happened from the operator's point of view.
	referencia := fmt.Sprintf("Pedido #%s", idCorto(pedido.ID))
	var fallidas []string
	lineas := make([]dto.LineaPedidoResponse, 0, len(carrito.Items))
	for _, item := range carrito.Items {
		_, err := s.kardex.RegistrarMovimiento(ctx, usuarioID, dto.RegistrarMovimientoRequest{
			ProductoID: item.ProductoID.String(),
			Tipo:       model.MovVenta,
			Cantidad:   item.Cantidad,
			Referencia: &referencia,
		})
		if err != nil {
			log.Warn().Err(err).Str("producto", item.Nombre).Str("pedido_id", pedido.ID.String()).
				Msg("checkout: línea no registrada (movimiento de stock)")
			fallidas = append(fallidas, item.Nombre)
			continue
		}

		linea := &model.LineaPedido{
			PedidoID:       pedido.ID,
			ProductoID:     item.ProductoID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.Precio,
			Subtotal:       LineaSubtotal(item),
		}
		if err := s.pedidoRepo.CreateLinea(ctx, linea); err != nil {
			// Stock already moved for this line; reconciliation is manual.
			log.Warn().Err(err).Str("producto", item.Nombre).Str("pedido_id", pedido.ID.String()).
				Msg("checkout: línea no persistida tras descontar stock")
			fallidas = append(fallidas, item.Nombre)
			continue
		}
		lineas = append(lineas, dto.LineaPedidoResponse{
			ID:             linea.ID.String(),
			ProductoID:     item.ProductoID.String(),
			Producto:       item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.Precio,
			Subtotal:       linea.Subtotal,
		})
	}
	if err := s.pedidoRepo.UpdateEtapa(ctx, pedido.ID, model.EtapaLineas); err != nil {
		log.Warn().Err(err).Msg("checkout: no se pudo avanzar la etapa a lineas")
	}

	// 5. Factura — checkout is modeled as immediate payment.
	factura := &model.Factura{
		PedidoID:  pedido.ID,
		ClienteID: cliente.ID,
		Subtotal:  totales.Subtotal,
		IVA:       totales.IVA,
		Envio:     totales.Envio,
		Total:     totales.Total,
		Estado:    model.FacturaPagada,
	}
	if err := s.facturaRepo.Create(ctx, factura); err != nil {
		// Pedido (and possibly lines) already exist; the cart stays intact.
		return nil, fmt.Errorf("pedido creado pero la factura falló: %w", err)
	}
	if err := s.pedidoRepo.UpdateEtapa(ctx, pedido.ID, model.EtapaFacturado); err != nil {
		log.Warn().Err(err).Msg("checkout: no se pudo avanzar la etapa a facturado")
	}

	// 6. Async facturación job (PDF + email). La factura existe aunque haya
	// líneas fallidas, así que se encola ANTES del retorno parcial. Si el
	// encolado mismo falla, se programa next_retry_at para que el cron la
	// recupere.
	s.encolarFacturacion(ctx, factura, cliente)

	resp := &dto.CheckoutResponse{
		Pedido: dto.PedidoResponse{
			ID:        pedido.ID.String(),
			ClienteID: cliente.ID.String(),
			Cliente:   cliente.Nombre,
			Estado:    pedido.Estado,
			Etapa:     model.EtapaFacturado,
			Total:     pedido.Total,
			Lineas:    lineas,
			CreatedAt: pedido.CreatedAt.Format(time.RFC3339),
		},
		Factura: dto.FacturaResponse{
			ID:        factura.ID.String(),
			PedidoID:  pedido.ID.String(),
			ClienteID: cliente.ID.String(),
			Cliente:   cliente.Nombre,
			Subtotal:  factura.Subtotal,
			IVA:       factura.IVA,
			Envio:     factura.Envio,
			Total:     factura.Total,
			Estado:    factura.Estado,
			CreatedAt: factura.CreatedAt.Format(time.RFC3339),
		},
		Mensaje: fmt.Sprintf("Pedido #%s creado — total $%s", idCorto(pedido.ID), totales.Total.StringFixed(2)),
	}

	if len(fallidas) > 0 {
		// The cart is NOT cleared and the etapa cursor stays at facturado:
		// the operator must reconcile the missing lines manually.
		resp.LineasFallidas = fallidas
		return resp, apierror.NewPartial(
			"el pedido y la factura fueron creados pero algunas líneas fallaron; se requiere conciliación manual",
			fallidas,
		)
	}

	// 7. Full success: clear the cart (including its persisted snapshot).
	if err := s.carritoRepo.Clear(ctx, usuarioID); err != nil {
		log.Warn().Err(err).Msg("checkout: no se pudo vaciar el carrito")
	}
	if err := s.pedidoRepo.UpdateEtapa(ctx, pedido.ID, model.EtapaCompletado); err != nil {
		log.Warn().Err(err).Msg("checkout: no se pudo avanzar la etapa a completado")
	}
	resp.Pedido.Etapa = model.EtapaCompletado

	return resp, nil
}

// encolarFacturacion manda la factura a la cola de PDF/email. Si Redis no
// acepta el job, marca next_retry_at para que el cron de reintentos la
// encuentre; una factura sin pdf_path y sin next_retry_at sería invisible.
func (s *checkoutService) encolarFacturacion(ctx context.Context, factura *model.Factura, cliente *model.Cliente) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]interface{}{"factura_id": factura.ID.String()}
	if cliente.Email != nil && *cliente.Email != "" {
		payload["cliente_email"] = *cliente.Email
	}
	if err := s.dispatcher.EnqueueFactura(ctx, payload); err != nil {
		log.Warn().Err(err).Str("factura_id", factura.ID.String()).
			Msg("checkout: no se pudo encolar la facturación")
		reintento := time.Now().Add(time.Minute)
		if mErr := s.facturaRepo.MarkFallo(ctx, factura.ID, "encolado fallido: "+err.Error(), &reintento); mErr != nil {
			log.Error().Err(mErr).Str("factura_id", factura.ID.String()).
				Msg("checkout: no se pudo programar el reintento de facturación")
		}
	}
}

// idCorto is the human-readable fragment of a pedido/factura id.
func idCorto(id uuid.UUID) string {
	return id.String()[:8]
}
