package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/efes-rota/rota-planner/internal/config"
	"github.com/efes-rota/rota-planner/internal/handler"
	"github.com/efes-rota/rota-planner/internal/health"
	"github.com/efes-rota/rota-planner/internal/observability/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listenAddr string // overrides PLANNER_LISTEN_ADDR

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverCfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			serverCfg.ListenAddr = listenAddr
		}
		if redisAddr == "" && serverCfg.Backend == config.BackendRedis {
			redisAddr = serverCfg.Redis.Addr
		}
		if err := serverCfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := openRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		plannerMetrics, err := metrics.NewPlannerMetrics()
		if err != nil {
			return err
		}
		rt.engine.WithMetrics(plannerMetrics)

		router := newRouter(rt, serverCfg.Version)
		srv := &http.Server{
			Addr:              serverCfg.ListenAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logrus.Infof("dashboard API listening on %s", serverCfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logrus.Info("shutting down dashboard API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// newRouter mounts health probes and the planner API.
func newRouter(rt *plannerRuntime, version string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger("/health", "/health/live", "/health/ready"))

	checker := health.NewChecker(rt.client, rt.store, version)
	r.GET("/health", checker.ReadyHandler())
	r.GET("/health/live", checker.LiveHandler())
	r.GET("/health/ready", checker.ReadyHandler())

	handler.NewPlannerHandler(rt.engine, rt.store).Register(r.Group("/api/v1"))
	return r
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default $PLANNER_LISTEN_ADDR or :8080)")
}
