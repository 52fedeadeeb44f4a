package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/stoneriver/portal/internal/config"
	"github.com/stoneriver/portal/internal/http/middleware"
	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/repository"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, pgDB, clickhouseDB *sqlx.DB, rds *redis.Client) *Server {
	// repos (Postgres)
	agentsRepo := repository.NewAgentsRepository(pgDB)
	customersRepo := repository.NewCustomersRepository(pgDB)
	participantsRepo := repository.NewParticipantsRepository(pgDB)
	paymentsRepo := repository.NewPaymentsRepository(pgDB)

	// repos (ClickHouse)
	decisionsRepo := repository.NewDecisionsRepository(clickhouseDB)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(agentsRepo)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		DefaultRPS:     cfg.RateLimit.RPS,
		KeyPrefix:      "rl:agent:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.POST("/payments", submitPaymentHandler(pgDB, customersRepo, paymentsRepo, rds))
	v1.GET("/customers/:policy/status", customerStatusHandler(customersRepo, participantsRepo, paymentsRepo))
	v1.GET("/reports/decisions", listDecisionsHandler(decisionsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
