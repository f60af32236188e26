package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/derent/internal/audit"
	auditdomain "github.com/smallbiznis/derent/internal/audit/domain"
	"github.com/smallbiznis/derent/internal/config"
	"github.com/smallbiznis/derent/internal/device"
	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
	obslogger "github.com/smallbiznis/derent/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/derent/internal/observability/metrics"
	"github.com/smallbiznis/derent/internal/platform"
	"github.com/smallbiznis/derent/internal/rental"
	rentaldomain "github.com/smallbiznis/derent/internal/rental/domain"
	"github.com/smallbiznis/derent/internal/token"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(NewEngine),
	platform.Module,
	token.Module,
	audit.Module,
	device.Module,
	rental.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	db        *gorm.DB
	deviceSvc devicedomain.Service
	rentalSvc rentaldomain.Service
	tokenSvc  tokendomain.Ledger
	auditSvc  auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	DB        *gorm.DB
	DeviceSvc devicedomain.Service
	RentalSvc rentaldomain.Service
	TokenSvc  tokendomain.Ledger
	AuditSvc  auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:    p.Gin,
		cfg:       p.Cfg,
		db:        p.DB,
		deviceSvc: p.DeviceSvc,
		rentalSvc: p.RentalSvc,
		tokenSvc:  p.TokenSvc,
		auditSvc:  p.AuditSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/devices", s.CreateDevice)
	v1.PATCH("/devices/:id", s.ModifyDevice)
	v1.GET("/devices", s.ListDeviceIDs)
	v1.GET("/devices/:id", s.GetDevice)
	v1.GET("/owners/:account", s.GetOwnerInfo)

	v1.POST("/rentals", s.RentDevice)
	v1.POST("/withdrawals", s.Withdraw)
	v1.GET("/orders/latest", s.LatestOrderID)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/users/:account", s.GetUserInfo)

	v1.GET("/platform", s.GetPlatform)
	v1.PUT("/admin/fee", s.SetFee)
	v1.POST("/admin/fee/withdrawals", s.TakeFee)

	v1.GET("/token/balances/:account", s.GetTokenBalance)
	v1.GET("/audit", s.ListAuditLogs)
}

// callerAccount resolves the acting identity. The service is the
// custody boundary, not an auth provider; upstream infrastructure is
// expected to authenticate the header.
func callerAccount(c *gin.Context) string {
	return c.GetHeader("X-Account")
}
