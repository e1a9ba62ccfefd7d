package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"fletero/internal/apierror"
	"fletero/internal/dto"
	"fletero/internal/middleware"
	"fletero/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CotizadorHandler serves the single quoting endpoint. The engine is
// read-only, so identical requests can be answered from cache.
type CotizadorHandler struct {
	svc      service.CotizadorService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewCotizadorHandler(svc service.CotizadorService, rdb *redis.Client, cacheTTL time.Duration) *CotizadorHandler {
	return &CotizadorHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

// Cotizar handles POST /v1/cotizador.
func (h *CotizadorHandler) Cotizar(c *gin.Context) {
	var req dto.CotizarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()

	cacheKey := claveCache(req)

	// 1. Try Redis cache. A hit skips every DB round trip.
	if cacheKey != "" {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.CotizacionResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	// 2. Cache miss — run the engine
	resp, err := h.svc.Cotizar(ctx, req)
	if err != nil {
		evt := log.Error().Err(err).Str("destino", req.Destino)
		if claims := middleware.GetClaims(c); claims != nil {
			evt = evt.Str("usuario", claims.Username)
		}
		evt.Msg("error cotizando")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo calcular la cotización"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if cacheKey != "" {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// claveCache derives a deterministic cache key from the normalized request
// body. Tariff edits invalidate by TTL, which is enough for a quoting
// screen that tolerates minutes of staleness.
func claveCache(req dto.CotizarRequest) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return "cotizador:" + hex.EncodeToString(sum[:])
}
