package worker

// factura_worker.go
// Processes invoice jobs from QueueFactura: generates the PDF for a factura
// already persisted at checkout and, if the client has an email, enqueues
// the send. Failures are recorded on the factura row with a next_retry_at
// so the retry cron can pick them up.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minegocio/internal/infra"
	"minegocio/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxFacturaRetries = 3

// FacturaJobPayload is the job envelope sent to QueueFactura.
type FacturaJobPayload struct {
	FacturaID    string `json:"factura_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

// FacturaWorker renders invoice PDFs in the background.
type FacturaWorker struct {
	facturaRepo   repository.FacturaRepository
	pedidoRepo    repository.PedidoRepository
	dispatcher    *Dispatcher
	rdb           *redis.Client
	nombreNegocio string
	storagePath   string
}

func NewFacturaWorker(
	facturaRepo repository.FacturaRepository,
	pedidoRepo repository.PedidoRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	nombreNegocio string,
	storagePath string,
) *FacturaWorker {
	return &FacturaWorker{
		facturaRepo:   facturaRepo,
		pedidoRepo:    pedidoRepo,
		dispatcher:    dispatcher,
		rdb:           rdb,
		nombreNegocio: nombreNegocio,
		storagePath:   storagePath,
	}
}

// Process handles a single factura job:
//  1. Parse FacturaJobPayload from the job envelope
//  2. Fetch the Factura (with cliente) and its pedido lines
//  3. Render the PDF and store its path on the factura row
//  4. Optionally enqueue an email job with the PDF attached
//
// On PDF failure the factura keeps its estado and gets a next_retry_at;
// after MaxFacturaRetries the job lands in the DLQ.
func (w *FacturaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FacturaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("factura_worker: invalid payload")
		return
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("factura_worker: invalid factura_id")
		return
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: factura not found")
		return
	}

	lineas, err := w.pedidoRepo.ListLineas(ctx, factura.PedidoID)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: failed to load lineas")
		w.markFallo(ctx, factura.ID, factura.RetryCount, raw, err)
		return
	}

	pdfPath, err := infra.GenerarFacturaPDF(factura, lineas, w.nombreNegocio, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: PDF generation failed")
		w.markFallo(ctx, factura.ID, factura.RetryCount, raw, err)
		return
	}

	if err := w.facturaRepo.SetPDFPath(ctx, factura.ID, pdfPath); err != nil {
		log.Error().Err(err).Str("factura_id", payload.FacturaID).Msg("factura_worker: failed to store pdf path")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("factura_id", payload.FacturaID).Msg("factura_worker: PDF generated")

	if payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.ClienteEmail,
			Subject: fmt.Sprintf("Factura %s — %s", shortID(factura.ID), w.nombreNegocio),
			Body:    fmt.Sprintf("Adjunto encontrarás tu factura.\nTotal: $%s", factura.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.ClienteEmail).Msg("factura_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", payload.ClienteEmail).Msg("factura_worker: email job enqueued")
		}
	}
}

// markFallo records the failure on the factura row and schedules the next
// attempt. Once retries are exhausted the job moves to the DLQ.
func (w *FacturaWorker) markFallo(ctx context.Context, id uuid.UUID, retryCount int, raw json.RawMessage, cause error) {
	attempts := retryCount + 1
	if attempts >= MaxFacturaRetries {
		_ = w.facturaRepo.MarkFallo(ctx, id, cause.Error(), nil)
		SendToDLQ(ctx, w.rdb, QueueFactura, "factura", raw,
			fmt.Sprintf("max retries (%d) exceeded: %v", MaxFacturaRetries, cause), attempts)
		return
	}
	nextRetry := time.Now().Add(computeRetryBackoff(attempts))
	_ = w.facturaRepo.MarkFallo(ctx, id, cause.Error(), &nextRetry)
	log.Warn().
		Str("factura_id", id.String()).
		Int("retry_count", attempts).
		Time("next_retry_at", nextRetry).
		Msg("factura_worker: job failed, scheduled retry")
}

// computeRetryBackoff returns the wait before the given attempt.
// Schedule: 1m, 2m, 4m … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	wait := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if wait > 30*time.Minute {
		wait = 30 * time.Minute
	}
	return wait
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
