package server

import (
	"context"
	"net/http"
	"strings"

	"leadhub/internal/config"
	"leadhub/internal/handlers"
	custommw "leadhub/internal/middleware"
	"leadhub/internal/repositories"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// ssoMounts are the prefixes the SSO group answers on. The frontend, the
// auth service and the legacy UI each call a different one.
var ssoMounts = []string{"/sso", "/auth", "/ui/sso"}

// Server wires configuration, storage and services into an Echo instance.
type Server struct {
	echo *echo.Echo
	cfg  *config.Config
}

// New builds the full HTTP surface: middleware pipeline, validator, error
// handler and every route group.
func New(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(corsMiddleware(cfg))

	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	sessionService := services.NewSessionService(tokenService, cfg)

	leadRepo := repositories.NewLeadRepository(db)
	leadService := services.NewLeadService(leadRepo, metrics)
	analyticsService := services.NewAnalyticsService(leadRepo, metrics)

	ssoHandler := handlers.NewSSOHandler(tokenService, sessionService, metrics, cfg.SSO)
	leadHandler := handlers.NewLeadHandler(leadService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	authGate := custommw.RequireSession(tokenService, sessionService, metrics, cfg)
	accountGuard := custommw.RequireAccountMatch()

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/login", ssoHandler.LoginRedirect)

	api := e.Group("/api")

	for _, mount := range ssoMounts {
		g := api.Group(mount)
		g.POST("/login", ssoHandler.Login)
		g.GET("/callback", ssoHandler.Callback)
		g.POST("/logout", ssoHandler.Logout)

		g.GET("/me", ssoHandler.Me, authGate)
		g.GET("/verify", ssoHandler.Me, authGate)
		g.GET("/auth", ssoHandler.Me, authGate)
	}

	leads := api.Group("/leads", authGate)
	leads.POST("", leadHandler.CreateLeads)
	leads.GET("", leadHandler.ListLeads)
	leads.PUT("/:id", leadHandler.UpdateLead)
	leads.DELETE("/:id", leadHandler.DeleteLead)

	api.GET("/analytics/chart-data", analyticsHandler.ChartData, authGate)

	scoped := api.Group("/accounts/:accountNumber", authGate, accountGuard)
	scoped.POST("/leads", leadHandler.CreateLeads)
	scoped.GET("/leads", leadHandler.ListLeads)
	scoped.PUT("/leads/:id", leadHandler.UpdateLead)
	scoped.DELETE("/leads/:id", leadHandler.DeleteLead)
	scoped.GET("/analytics/chart-data", analyticsHandler.ChartData)

	return &Server{echo: e, cfg: cfg}
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.echo.Server.ReadTimeout = s.cfg.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.Server.WriteTimeout
	return s.echo.Start(":" + s.cfg.Server.Port)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// corsMiddleware allows the configured origins with credentials. Development
// additionally admits any localhost origin so frontend ports can move freely.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	corsConfig := echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, custommw.AccountNumberHeader},
	}

	if cfg.IsDevelopment() {
		allowed := cfg.Server.CORSAllowOrigins
		corsConfig.AllowOrigins = nil
		corsConfig.AllowOriginFunc = func(origin string) (bool, error) {
			if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true, nil
			}
			for _, o := range allowed {
				if origin == o {
					return true, nil
				}
			}
			return false, nil
		}
	}

	return echomw.CORSWithConfig(corsConfig)
}
