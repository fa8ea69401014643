package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth       AuthService
	Socios     SocioService
	Insumos    InsumoService
	Produccion ProduccionService
	Ventas     VentaService
	Pagos      PagoService
	Usuarios   UsuarioService

	KPIs    KPIService
	Charts  ChartsService
	Summary SummaryService
	Export  ExportService

	DB        Pinger
	JWTSecret string
	Cookie    CookieConfig
}

// Router registra las rutas de la API.
//
// Lectura: cualquier usuario autenticado. Escritura según rol:
// socios admin; insumos y producción admin/productor; ventas y pagos admin/contador;
// usuarios solo admin. Reportes: admin, contador y productor.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", HealthHandler(deps.DB))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret, deps.Cookie.Name))

	admin := RequireRole(entity.RoleAdmin)
	campo := RequireRole(entity.RoleAdmin, entity.RoleProductor)
	finanzas := RequireRole(entity.RoleAdmin, entity.RoleContador)

	// Socios
	socioHandler := NewSocioHandler(deps.Socios)
	socios := protected.Group("/socios")
	socios.Get("/", socioHandler.List)
	socios.Get("/options", socioHandler.Options)
	socios.Get("/:id", socioHandler.GetByID)
	socios.Post("/", admin, socioHandler.Create)
	socios.Put("/:id", admin, socioHandler.Update)
	socios.Delete("/:id", admin, socioHandler.Delete)

	// Insumos
	insumoHandler := NewInsumoHandler(deps.Insumos)
	insumos := protected.Group("/insumos")
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Post("/", campo, insumoHandler.Create)
	insumos.Put("/:id", campo, insumoHandler.Update)
	insumos.Delete("/:id", campo, insumoHandler.Delete)
	insumos.Post("/:id/reposicion", campo, insumoHandler.Restock)

	// Producción
	produccionHandler := NewProduccionHandler(deps.Produccion)
	produccion := protected.Group("/produccion")
	produccion.Get("/", produccionHandler.List)
	produccion.Get("/:id", produccionHandler.GetByID)
	produccion.Post("/", campo, produccionHandler.Create)
	produccion.Put("/:id", campo, produccionHandler.Update)
	produccion.Delete("/:id", campo, produccionHandler.Delete)

	// Ventas
	ventaHandler := NewVentaHandler(deps.Ventas)
	ventas := protected.Group("/ventas")
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/statistics", ventaHandler.Statistics)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Post("/", finanzas, ventaHandler.Create)
	ventas.Put("/:id", finanzas, ventaHandler.Update)
	ventas.Delete("/:id", finanzas, ventaHandler.Delete)

	// Pagos
	pagoHandler := NewPagoHandler(deps.Pagos)
	pagos := protected.Group("/pagos")
	pagos.Get("/", pagoHandler.List)
	pagos.Get("/statistics", pagoHandler.Statistics)
	pagos.Get("/:id", pagoHandler.GetByID)
	pagos.Post("/", finanzas, pagoHandler.Create)
	pagos.Put("/:id", finanzas, pagoHandler.Update)
	pagos.Delete("/:id", finanzas, pagoHandler.Delete)

	// Usuarios (solo admin)
	usuarioHandler := NewUsuarioHandler(deps.Usuarios)
	usuarios := protected.Group("/usuarios", admin)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)

	// Reportes
	reportHandler := NewReportHandler(deps.KPIs, deps.Charts, deps.Summary, deps.Export)
	reportes := protected.Group("/reportes", RequireRole(entity.RoleAdmin, entity.RoleContador, entity.RoleProductor))
	reportes.Get("/kpis", reportHandler.KPIs)
	reportes.Get("/charts", reportHandler.Charts)
	reportes.Get("/summary", reportHandler.Summary)
	reportes.Get("/products", reportHandler.Products)
	reportes.Get("/export/pdf", reportHandler.ExportPDF)
}
