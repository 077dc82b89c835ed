package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rota-robotics/rota"
	"github.com/rota-robotics/rota/internal/routine"
	"github.com/rota-robotics/rota/internal/server"
	"github.com/rota-robotics/rota/pkg/observability"
)

const defaultPeriod = 20 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run <routine.yaml>",
	Short: "Drive a routine file on a fixed control cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serveAddr, _ := cmd.Flags().GetString("serve")
		return runRoutine(cmd, args[0], serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("serve", "", "Address for the read-only telemetry HTTP server (empty disables it)")
}

func runRoutine(cmd *cobra.Command, path, serveAddr string) error {
	file, err := routine.Load(path)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	sched := rota.New(
		rota.WithLogger(logger),
		rota.WithName(file.Name),
		rota.WithLifecycleHooks(metrics.Hooks()),
	)

	cleanup, err := routine.Build(file, sched, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var telemetry *server.Server
	if serveAddr != "" {
		telemetry = server.New(logger, server.WithMetricsHandler(
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		))
		go func() {
			if serveErr := telemetry.ListenAndServe(ctx, serveAddr); serveErr != nil {
				logger.Error("telemetry server stopped", "error", serveErr)
			}
		}()
	}

	period := defaultPeriod
	if file.PeriodMS > 0 {
		period = time.Duration(file.PeriodMS) * time.Millisecond
	}
	logger.Info("routine started", "routine", file.Name, "period", period, "cycles", file.Cycles)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("routine interrupted", "cycles_run", sched.Cycle())
			return nil
		case <-ticker.C:
			sched.Run()
			if telemetry != nil {
				telemetry.Publish(sched.Snapshot())
			}
			if file.Cycles > 0 && sched.Cycle() >= uint64(file.Cycles) {
				logger.Info("routine complete", "cycles_run", sched.Cycle())
				return nil
			}
		}
	}
}
