package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/office-management/internal/scheduler"
	"github.com/frahmantamala/office-management/internal/transport/rest"
	"github.com/frahmantamala/office-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server, and the sweep scheduler when it is enabled`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// NewRouter mounts every route with the configured middleware.
func NewRouter(deps *Dependencies) *chi.Mux {
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, deps.Handlers(), rest.Options{
		AllowedOrigins: deps.Config.Server.Origins(),
		RequestTimeout: deps.Config.Server.RequestTimeout,
	}, deps.Logger)
	return router
}

func startHTTPServer() {
	ctx := context.Background()
	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	log := deps.Logger

	if _, err := swagger.Load(ctx); err != nil {
		log.Error("invalid openapi document", "error", err)
		os.Exit(1)
	}

	var sched *scheduler.Scheduler
	if deps.Config.Scheduler.Enabled {
		sched, err = deps.Scheduler()
		if err == nil {
			err = sched.Start()
		}
		if err != nil {
			log.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	log.Info("Starting HTTP server", "address", addr, "store", deps.Store.Driver())

	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down...", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler shutdown error", "error", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", "error", err)
	}
	if err := deps.Close(shutdownCtx); err != nil {
		log.Error("Store close error", "error", err)
	}

	log.Info("Server stopped")
}
