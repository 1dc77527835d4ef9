package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues facturas whose PDF or
// email job failed and whose next_retry_at is in the past. The worker pool
// then re-attempts them with the regular failure handling.

import (
	"context"
	"time"

	"minegocio/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries facturas pending retry, and re-enqueues their jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, facturaRepo repository.FacturaRepository, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, facturaRepo, dispatcher)
			}
		}
	}()
}

func processRetries(ctx context.Context, facturaRepo repository.FacturaRepository, dispatcher *Dispatcher) {
	facturas, err := facturaRepo.ListPendientesRetry(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(facturas) == 0 {
		return
	}

	log.Info().Int("count", len(facturas)).Msg("retry_cron: re-enqueuing failed facturas")

	for i := range facturas {
		f := &facturas[i]

		payload := FacturaJobPayload{FacturaID: f.ID.String()}
		if f.Cliente != nil && f.Cliente.Email != nil {
			payload.ClienteEmail = *f.Cliente.Email
		}

		if err := dispatcher.EnqueueFactura(ctx, payload); err != nil {
			log.Error().Err(err).Str("factura_id", f.ID.String()).Msg("retry_cron: failed to re-enqueue")
			continue
		}

		log.Info().
			Str("factura_id", f.ID.String()).
			Int("retry_count", f.RetryCount).
			Msg("retry_cron: factura re-enqueued")
	}
}
