package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docuintel/docuintel/internal/bootstrap"
	"github.com/docuintel/docuintel/internal/config"
	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/observability/logging"
	"github.com/docuintel/docuintel/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	taskTimeout := time.Duration(cfg.WorkerTaskTimeoutSeconds) * time.Second
	semaphore := make(chan struct{}, cfg.WorkerMaxInFlight)

	handler := func(msgCtx context.Context, task domain.CategorizationTask) error {
		semaphore <- struct{}{}
		defer func() { <-semaphore }()

		if !task.EnqueuedAt.IsZero() {
			workerMetrics.ObserveQueueLag("worker", time.Since(task.EnqueuedAt))
		}
		workerMetrics.StartTask()
		start := time.Now()

		taskCtx, cancel := context.WithTimeout(msgCtx, taskTimeout)
		defer cancel()

		err := app.CategorizeUC.Categorize(taskCtx, task.FileID, task.FolderID)
		workerMetrics.FinishTask("worker", time.Since(start), err)
		if err != nil {
			logger.Error("categorization failed", "file_id", task.FileID, "error", err)
			return err
		}
		logger.Info("categorization complete", "file_id", task.FileID, "duration", time.Since(start).String())
		return nil
	}

	if err := app.Queue.SubscribeCategorization(ctx, handler); err != nil {
		log.Fatalf("subscribe error: %v", err)
	}
	logger.Info("worker consuming", "subject", cfg.NATSSubject, "max_in_flight", cfg.WorkerMaxInFlight)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown error", "error", err)
	}
}
