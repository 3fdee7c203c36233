package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/api/handler"
	"github.com/sutram/service-registry/internal/api/middleware"
	"github.com/sutram/service-registry/internal/core/ports"
	infrahttp "github.com/sutram/service-registry/internal/infrastructure/http"
	"github.com/sutram/service-registry/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	AuthService   ports.AuthService
	RecordService ports.RecordService
	ImportService ports.ImportService
	Exporter      ports.RecordExporter
	Renderer      echo.Renderer
	DB            handlers.Pinger
	Session       middleware.SessionConfig
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// HTTP metrics go to a registry owned by this router so several routers
	// can coexist in one process; /metrics serves it next to the default one.
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "sutram",
		Subsystem:  "http",
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/metrics") || strings.HasPrefix(c.Path(), "/health")
		},
	}))
	e.Use(session.Middleware(newFlashStore(d.Session)))

	// --- Dependencies ---
	sessionStore := middleware.NewSessions(d.Session)
	requireSession := sessionStore.Require()

	authHandler := handler.NewAuthHandler(d.AuthService, sessionStore)
	recordHandler := handler.NewRecordHandler(d.RecordService, d.Exporter)
	importHandler := handler.NewImportHandler(d.ImportService)
	userHandler := handler.NewUserHandler(d.AuthService)

	// --- Probes and metrics (no auth required) ---
	infrahttp.RegisterOperational(e, d.DB, prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics})

	// --- Public routes ---
	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Session-gated routes ---
	e.GET("/cadastro", recordHandler.CreateForm, requireSession)
	e.POST("/cadastro", recordHandler.Create, requireSession)
	e.GET("/dados", recordHandler.DataPage, requireSession)
	e.GET("/painel", recordHandler.Dashboard, requireSession)
	e.GET("/dados.json", recordHandler.List, requireSession)
	e.GET("/api/sugestoes/:campo", recordHandler.Suggestions, requireSession)
	e.POST("/importar", importHandler.Import, requireSession)
	e.GET("/exportar_excel", recordHandler.ExportXLSX, requireSession)
	e.GET("/exportar_csv", recordHandler.ExportCSV, requireSession)
	e.POST("/apagar_tudo", recordHandler.DeleteAll, requireSession)
	e.GET("/usuarios", userHandler.List, requireSession)
	e.POST("/usuarios", userHandler.Create, requireSession)

	return e
}

// newFlashStore keeps flash messages in a signed browser-session cookie.
func newFlashStore(cfg middleware.SessionConfig) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
