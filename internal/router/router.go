package router

import (
	"time"

	"minegocio/internal/config"
	"minegocio/internal/handler"
	"minegocio/internal/infra"
	"minegocio/internal/middleware"
	"minegocio/internal/model"
	"minegocio/internal/repository"
	"minegocio/internal/service"
	"minegocio/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	kardexRepo := repository.NewKardexRepository(db)
	carritoRepo := repository.NewCarritoRepository(rdb)
	actividadRepo := repository.NewActividadRepository(rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, actividadRepo, cfg)
	kardexSvc := service.NewKardexService(kardexRepo, productoRepo, infra.GenerarKardexExcel)
	productoSvc := service.NewProductoService(productoRepo, kardexSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	carritoSvc := service.NewCarritoService(carritoRepo, productoRepo)
	checkoutSvc := service.NewCheckoutService(pedidoRepo, facturaRepo, clienteRepo, carritoRepo, kardexSvc, dispatcher)
	pedidoSvc := service.NewPedidoService(pedidoRepo)
	facturaSvc := service.NewFacturaService(facturaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc, checkoutSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	kardexH := handler.NewKardexHandler(kardexSvc)
	actividadH := handler.NewActividadHandler(actividadRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	ambos := middleware.RequireRole(model.RolAdmin, model.RolVendedor)
	soloAdmin := middleware.RequireRole(model.RolAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", ambos, authH.Logout)

		// Catálogo — lectura para ambos roles, escritura solo admin
		v1.GET("/productos", ambos, productosH.Listar)
		v1.GET("/productos/:id", ambos, productosH.ObtenerPorID)
		prods := v1.Group("/productos", soloAdmin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		clientes := v1.Group("/clientes", ambos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", soloAdmin, clientesH.Eliminar)

		carrito := v1.Group("/carrito", ambos)
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.AgregarItem)
			carrito.PUT("/items/:producto_id", carritoH.ActualizarCantidad)
			carrito.DELETE("/items/:producto_id", carritoH.QuitarItem)
			carrito.DELETE("", carritoH.Vaciar)
			carrito.POST("/confirmar", carritoH.Confirmar)
		}

		pedidos := v1.Group("/pedidos", ambos)
		{
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.ObtenerPorID)
			pedidos.GET("/:id/lineas", pedidosH.ListarLineas)
			pedidos.GET("/:id/factura", facturasH.ObtenerPorPedido)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
		}

		v1.GET("/facturas", ambos, facturasH.Listar)
		v1.GET("/facturas/:id", ambos, facturasH.ObtenerPorID)
		v1.GET("/facturas/:id/pdf", ambos, facturasH.DescargarPDF)
		facturas := v1.Group("/facturas", soloAdmin)
		{
			facturas.PATCH("/:id/estado", facturasH.CambiarEstado)
			facturas.DELETE("/:id", facturasH.Eliminar)
		}

		kardex := v1.Group("/kardex", ambos)
		{
			kardex.POST("/movimientos", kardexH.Registrar)
			kardex.GET("/movimientos", kardexH.Movimientos)
			kardex.GET("/existencias", kardexH.Existencias)
		}
		v1.GET("/kardex/exportar", soloAdmin, kardexH.ExportarExcel)

		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}

		v1.GET("/actividad", soloAdmin, actividadH.Listar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
