package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/codex-employee-records/internal/adapters/http/handler"
	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
	"github.com/rs/zerolog"
)

// Dependencies はルーティングに必要なユースケースと補助関数です。
type Dependencies struct {
	Employees employee.UseCase
	Ping      handler.PingFunc
	Logger    zerolog.Logger
}

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewRouter は /api/employees と /healthz を登録した gin エンジンを構築します。
func NewRouter(cfg config.ServerConfig, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(handler.RequestID(), handler.RequestLogger(deps.Logger), handler.Recovery(deps.Logger))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", handler.RequestIDHeader},
			ExposeHeaders: []string{handler.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthz", handler.Health(deps.Ping, deps.Logger))

	employees := handler.NewEmployeeHandler(deps.Employees, deps.Logger)
	employees.Register(r.Group("/api/employees"))

	return r
}

// New は指定された設定で待ち受ける HTTP サーバーを構築します。
func New(cfg config.ServerConfig, deps Dependencies) *Server {
	gin.SetMode(cfg.Mode)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(cfg, deps),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          deps.Logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。コンテキストのキャンセルで graceful shutdown します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- s.httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", lis.Addr().String()).Msg("http server listening")

	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
