package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gytech/flightdesk/api"
	"github.com/gytech/flightdesk/config"
	"github.com/gytech/flightdesk/internal/events"
	"github.com/gytech/flightdesk/internal/service/core"
	"go.uber.org/zap"
)

// Run serves the local HTTP facade and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc *core.Core, bus *events.Bus, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	root := router.Group("/api")
	api.NewSessionHandler(svc).Register(root)
	api.NewEventsHandler(bus).Register(root)
	api.NewFlightHandler(svc).Register(root.Group("/flights"))
	api.NewFeedHandler(svc).Register(root.Group("/posts"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
