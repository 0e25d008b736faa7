package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the periodic sweeps without the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		startScheduler()
	},
}

var sweepCmd = &cobra.Command{
	Use:       "sweep <name>",
	Short:     "Run one sweep now",
	Long:      `Run one sweep immediately: auto-checkout, auto-absent, task-cleanup or job-post-close`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"auto-checkout", "auto-absent", "task-cleanup", "job-post-close"},
	RunE:      runSweep,
}

func startScheduler() {
	ctx := context.Background()
	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	log := deps.Logger

	sched, err := deps.Scheduler()
	if err == nil {
		err = sched.Start()
	}
	if err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("scheduler is running. Press Ctrl+C to stop.", "sweeps", sched.Names())

	sig := <-sigChan
	log.Info("received signal, shutting down scheduler", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Warn("shutdown timeout reached, forcing exit", "error", err)
	}
	if err := deps.Close(shutdownCtx); err != nil {
		log.Error("store close error", "error", err)
	}
	log.Info("scheduler shutdown complete")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	deps, err := initializeDependencies(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close(context.Background()) }()

	sched, err := deps.Scheduler()
	if err != nil {
		return err
	}
	n, err := sched.Run(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", args[0], n)
	return nil
}
