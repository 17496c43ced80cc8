package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/xrechnung-api/internal/application/auth"
	"github.com/jhoicas/xrechnung-api/internal/application/einvoice"
	"github.com/jhoicas/xrechnung-api/internal/domain/repository"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/objectstore"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/postgres"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
	_ "github.com/jhoicas/xrechnung-api/docs"
	httpRouter "github.com/jhoicas/xrechnung-api/internal/interfaces/http"
	"github.com/jhoicas/xrechnung-api/pkg/config"
	"github.com/jhoicas/xrechnung-api/pkg/logger"
	"github.com/jhoicas/xrechnung-api/pkg/metrics"
)

// docsFile spec OpenAPI generada con swag init (directorio docs/).
const docsFile = "./docs/swagger.json"

// @title                       XRechnung API
// @version                     1.0
// @description                 Generación, validación y archivo de facturas XRechnung 3.0 (EN 16931, UN/CEFACT CII).
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("root", cfg.XRechnung.Root).
		Bool("strict", cfg.XRechnung.Strict).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Auditoría en PostgreSQL solo si hay base de datos configurada.
	var documents repository.DocumentRepository
	var authUC *auth.AuthUseCase
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewDocumentRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de auditoría")
		}
		documents = repo

		users := postgres.NewUserRepository(pool)
		if err := users.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de usuarios")
		}
		authUC = auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		created, err := authUC.Bootstrap(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Auth.AdminEmail).Msg("administrador inicial creado")
		}
	} else {
		log.Warn().Msg("sin base de datos: exportaciones sin registro de auditoría y sin login")
	}

	var mirror einvoice.Mirror
	if cfg.S3.Enabled() {
		m, err := objectstore.NewS3Mirror(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		mirror = m
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := einvoice.NewService(einvoice.Deps{
		Generator: xrechnung.NewGenerator(cfg.XRechnung.Specification),
		Archive:   xrechnung.NewFileArchive(cfg.XRechnung.Root),
		Documents: documents,
		Mirror:    mirror,
		Metrics:   m,
		Logger:    log,
		Strict:    cfg.XRechnung.Strict,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs. El middleware exige el archivo.
	if _, err := os.Stat(docsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: docsFile,
			Path:     "docs",
			Title:    "XRechnung API",
		}))
	} else {
		log.Warn().Str("file", docsFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		XRechnung: svc,
		Auth:      authUC,
		Metrics:   m,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
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
