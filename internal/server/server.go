package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/handler"
	"paint-it-black-manufacturer/internal/logging"
	"paint-it-black-manufacturer/internal/metrics"
	appmw "paint-it-black-manufacturer/internal/middleware"
	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ShutdownTimeout bounds graceful shutdown in cmd/api.
const ShutdownTimeout = 30 * time.Second

type Server struct {
	echo           *echo.Echo
	logger         *zap.Logger
	tokens         *service.TokenService
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
}

type Services struct {
	Orders  service.OrderService
	Users   service.UserService
	Catalog service.CatalogService
	Tokens  *service.TokenService
}

func NewServer(cfg config.HTTPServer, svc Services, logger *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:           e,
		logger:         logger,
		tokens:         svc.Tokens,
		orderHandler:   handler.NewOrderHandler(svc.Orders),
		userHandler:    handler.NewUserHandler(svc.Users),
		catalogHandler: handler.NewCatalogHandler(svc.Catalog),
		metrics:        m,
		gatherer:       gatherer,
	}

	e.Use(middleware.RequestID())
	e.Use(s.requestContext())
	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}))
	}
	e.Use(appmw.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupRoutes() {
	auth := appmw.JWTAuth(s.tokens)
	admin := appmw.RequireAdmin()

	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	s.echo.POST("/jwt", s.userHandler.IssueToken)

	// -------- users --------
	s.echo.PUT("/users", s.userHandler.UpsertUser, auth)
	s.echo.GET("/users/role", s.userHandler.GetRole, auth)
	s.echo.GET("/users", s.userHandler.ListUsers, auth, admin)

	// -------- catalog --------
	s.echo.GET("/tools", s.catalogHandler.ListTools)
	s.echo.GET("/tools/:id", s.catalogHandler.GetTool)
	s.echo.POST("/tools", s.catalogHandler.CreateTool, auth, admin)
	s.echo.GET("/reviews", s.catalogHandler.ListReviews)
	s.echo.POST("/reviews", s.catalogHandler.AddReview, auth)

	// -------- orders / payments --------
	orders := s.echo.Group("/orders", auth)
	orders.GET("", s.orderHandler.ListOrders)
	orders.POST("", s.orderHandler.CreateOrder)
	orders.DELETE("/:id", s.orderHandler.CancelOrder)

	payments := s.echo.Group("/payments", auth)
	payments.GET("", s.orderHandler.ListPayments)
	payments.POST("", s.orderHandler.ConfirmPayment)
	payments.POST("/intent", s.orderHandler.CreatePaymentIntent)
}

// requestContext extracts W3C trace context and binds a request scoped logger.
func (s *Server) requestContext() echo.MiddlewareFunc {
	prop := otel.GetTextMapPropagator()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := prop.Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			fields := []zap.Field{zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID))}
			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				fields = append(fields,
					zap.String("trace_id", sc.TraceID().String()),
					zap.String("span_id", sc.SpanID().String()),
				)
			}
			ctx = logging.WithContext(ctx, s.logger.With(fields...))

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			route := v.RoutePath
			if route == "" {
				route = "unknown"
			}
			if s.metrics != nil {
				s.metrics.HTTPRequests.WithLabelValues(v.Method, route, strconv.Itoa(v.Status)).Inc()
			}

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", route),
				zap.Int("status", v.Status),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
				zap.String("request_id", v.RequestID),
			}
			logger := logging.FromContext(c.Request().Context())
			if v.Error != nil && v.Status >= http.StatusInternalServerError {
				logger.Error("http_access", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("http_access", fields...)
			return nil
		},
	})
}

func (s *Server) Start(address string) error {
	s.logger.Info("http_server_starting", zap.String("address", address))
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
