package router

import (
	"time"

	"catalogo/internal/config"
	"catalogo/internal/handler"
	"catalogo/internal/middleware"
	"catalogo/internal/repository"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store ← DB/file, with Redis optional.
func New(cfg *config.Config, store repository.Store, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler(cfg.IsProduction()))
	r.Use(middleware.RateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(store)
	categoriaSvc := service.NewCategoriaService(store)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(store, rdb))

	prods := r.Group("/productos")
	{
		prods.GET("", productosH.Listar)
		prods.GET("/disponibles", productosH.ListarDisponibles)
		prods.GET("/:id", productosH.ObtenerPorID)
		prods.POST("", productosH.Crear)
		prods.PUT("/:id", productosH.Actualizar)
		prods.PATCH("/:id", productosH.Actualizar)
		prods.DELETE("/:id", productosH.Eliminar)
	}

	categorias := r.Group("/categorias")
	{
		categorias.GET("", categoriasH.Listar)
		categorias.GET("/:id", categoriasH.ObtenerPorID)
		categorias.POST("", categoriasH.Crear)
		categorias.PUT("/:id", categoriasH.Actualizar)
		categorias.DELETE("/:id", categoriasH.Eliminar)
	}

	return r
}
