package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/xrechnung-api/internal/application/auth"
	"github.com/jhoicas/xrechnung-api/internal/application/einvoice"
	"github.com/jhoicas/xrechnung-api/pkg/jwt"
	"github.com/jhoicas/xrechnung-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	XRechnung *einvoice.Service
	Auth      *auth.AuthUseCase // nil = sin login ni alta de usuarios (tokens emitidos fuera)
	Metrics   *metrics.Metrics  // nil = sin /metrics
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	var authH *AuthHandler
	if deps.Auth != nil {
		authH = NewAuthHandler(deps.Auth)
		app.Post("/auth/login", authH.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	if authH != nil {
		api.Post("/users", RequireRole(jwt.RoleAdmin), authH.Register)
	}

	xr := api.Group("/xrechnung")
	h := NewXRechnungHandler(deps.XRechnung)
	xr.Post("/validate", h.Validate)
	xr.Post("/generate", h.Generate)

	// Archivar y leer el archivo: solo administración y contabilidad.
	archive := RequireRole(jwt.RoleAdmin, jwt.RoleAccounting)
	xr.Post("/export", archive, h.Export)
	xr.Get("/:number", archive, h.GetByNumber)
}
