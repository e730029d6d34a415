package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bharatstack/gstbill/internal/config"
	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
	invoicedomain "github.com/bharatstack/gstbill/internal/invoice/domain"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	sequencedomain "github.com/bharatstack/gstbill/internal/sequence/domain"
	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine       *gin.Engine
	cfg          config.Config
	genID        *snowflake.Node
	merchantSvc  merchantdomain.Service
	warehouseSvc warehousedomain.Service
	hsnSvc       hsndomain.Service
	sequenceSvc  sequencedomain.Service
	invoiceSvc   invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	GenID        *snowflake.Node
	MerchantSvc  merchantdomain.Service
	WarehouseSvc warehousedomain.Service
	HSNSvc       hsndomain.Service
	SequenceSvc  sequencedomain.Service
	InvoiceSvc   invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		genID:        p.GenID,
		merchantSvc:  p.MerchantSvc,
		warehouseSvc: p.WarehouseSvc,
		hsnSvc:       p.HSNSvc,
		sequenceSvc:  p.SequenceSvc,
		invoiceSvc:   p.InvoiceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", MerchantScope())

	// -------- Merchant profile --------
	api.GET("/profile", s.GetProfile)
	api.PUT("/profile", s.UpsertProfile)

	// -------- Warehouses --------
	api.GET("/warehouses", s.ListWarehouses)
	api.POST("/warehouses", s.CreateWarehouse)
	api.GET("/warehouses/:id", s.GetWarehouse)
	api.PUT("/warehouses/:id", s.UpdateWarehouse)
	api.DELETE("/warehouses/:id", s.DeleteWarehouse)
	api.POST("/warehouses/:id/default", s.SetDefaultWarehouse)

	// -------- HSN mappings --------
	api.GET("/hsn-mappings", s.ListHSNMappings)
	api.POST("/hsn-mappings", s.CreateHSNMapping)
	api.GET("/hsn-mappings/:id", s.GetHSNMapping)
	api.PUT("/hsn-mappings/:id", s.UpdateHSNMapping)
	api.DELETE("/hsn-mappings/:id", s.DeleteHSNMapping)

	// -------- Invoice numbering --------
	api.GET("/sequence", s.GetSequenceSettings)
	api.PUT("/sequence", s.UpdateSequenceSettings)
	api.GET("/sequence/preview", s.PeekNextNumber)

	// -------- Invoices --------
	api.POST("/invoices", s.GenerateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/stats", s.InvoiceStats)
	api.GET("/invoices/:id", s.GetInvoice)
	api.POST("/invoices/:id/cancel", s.CancelInvoice)
	api.POST("/invoices/:id/credit-note", s.CreateCreditNote)
	api.GET("/invoices/:id/html", s.RenderInvoiceHTML)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)
	api.GET("/invoices/:id/label", s.RenderShippingLabel)
}
