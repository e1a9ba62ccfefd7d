package router

import (
	"time"

	"fletero/internal/config"
	"fletero/internal/handler"
	"fletero/internal/middleware"
	"fletero/internal/repository"
	"fletero/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	tarifaRepo := repository.NewTarifaRepository(db)
	especialRepo := repository.NewTarifaEspecialRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cotizadorSvc := service.NewCotizadorService(clienteRepo, tarifaRepo, especialRepo, cotizacionRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cotizadorH := handler.NewCotizadorHandler(cotizadorSvc, rdb, time.Duration(cfg.CacheTTLSegundos)*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected: the quoting screen runs inside the authenticated back office
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.POST("/cotizador", cotizadorH.Cotizar)
	}

	return r
}
