package worker

// vencimiento.go
// Background goroutine that periodically marks pending quotations whose
// validity date has passed as "vencida", so Path B never resurrects a stale
// price. A short-lived Redis lock keeps multiple replicas from racing.

import (
	"context"
	"time"

	"fletero/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const vencimientoLockKey = "cron:vencimiento_cotizaciones"

// VencimientoCronConfig holds the dependencies of the expiry goroutine.
type VencimientoCronConfig struct {
	Cotizaciones repository.CotizacionRepository
	RDB          *redis.Client
	Intervalo    time.Duration
}

// StartVencimientoCron launches a background goroutine that ticks on the
// configured interval and expires stale quotations. It respects the context
// for graceful shutdown.
func StartVencimientoCron(ctx context.Context, cfg VencimientoCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", cfg.Intervalo).Msg("vencimiento_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-ticker.C:
				expirarCotizaciones(ctx, cfg)
			}
		}
	}()
}

func expirarCotizaciones(ctx context.Context, cfg VencimientoCronConfig) {
	// Only one replica runs the sweep per interval. Redis being down is not a
	// reason to skip it: worst case two replicas issue the same idempotent
	// UPDATE.
	if cfg.RDB != nil {
		ok, err := cfg.RDB.SetNX(ctx, vencimientoLockKey, "1", cfg.Intervalo/2).Result()
		if err == nil && !ok {
			log.Debug().Msg("vencimiento_cron: lock held by another replica, skipping tick")
			return
		}
	}

	n, err := cfg.Cotizaciones.MarcarVencidas(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("vencimiento_cron: failed to expire quotations")
		return
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("vencimiento_cron: quotations expired")
	}
}
