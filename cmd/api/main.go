package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/auth"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/reports"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/usecase"
	domreports "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
	infrapdf "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/infrastructure/pdf"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/interfaces/http"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/config"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: los logins fallarán hasta configurarlo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	socioRepo := postgres.NewSocioRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	produccionRepo := postgres.NewProduccionRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	socioUC := usecase.NewSocioUseCase(socioRepo)
	insumoUC := usecase.NewInsumoUseCase(insumoRepo, txRunner)
	produccionUC := usecase.NewProduccionUseCase(produccionRepo, socioRepo)
	ventaUC := usecase.NewVentaUseCase(ventaRepo, socioRepo)
	pagoUC := usecase.NewPagoUseCase(pagoRepo, txRunner, log)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	reportOpts := reports.Options{
		Margin: domreports.MarginPolicy{
			CostRatio:         cfg.Reports.CostRatio,
			FallbackCostRatio: cfg.Reports.FallbackCostRatio,
			AdjustNegative:    cfg.Reports.AdjustNegativeMargin,
		},
		WidenEmptyPeriod: cfg.Reports.WidenEmptyPeriod,
		CostWindowMonths: cfg.Reports.CostWindowMonths,
		ChartMonths:      cfg.Reports.ChartMonths,
		MemberQuota:      cfg.Reports.MemberQuota,
	}
	kpiUC := reports.NewKPIUseCase(reportRepo, reportOpts, log)
	chartsUC := reports.NewChartsUseCase(reportRepo, reportOpts, log)
	summaryUC := reports.NewSummaryUseCase(reportRepo)
	pdfUC := reports.NewPDFUseCase(kpiUC, summaryUC, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		BodyLimitMB: cfg.HTTP.BodyLimitMB,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Cooperativa Agrícola API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:       authUC,
		Socios:     socioUC,
		Insumos:    insumoUC,
		Produccion: produccionUC,
		Ventas:     ventaUC,
		Pagos:      pagoUC,
		Usuarios:   usuarioUC,
		KPIs:       kpiUC,
		Charts:     chartsUC,
		Summary:    summaryUC,
		Export:     pdfUC,
		DB:         pool,
		JWTSecret:  cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
