package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuintel/docuintel/internal/config"
	"github.com/docuintel/docuintel/internal/core/ports"
	"github.com/docuintel/docuintel/internal/core/usecase"
	"github.com/docuintel/docuintel/internal/infrastructure/ai"
	"github.com/docuintel/docuintel/internal/infrastructure/extractor"
	"github.com/docuintel/docuintel/internal/infrastructure/queue/nats"
	"github.com/docuintel/docuintel/internal/infrastructure/repository/postgres"
	"github.com/docuintel/docuintel/internal/infrastructure/resilience"
	"github.com/docuintel/docuintel/internal/infrastructure/storage/s3"
)

// App owns construction and teardown of every shared dependency; nothing in
// the codebase reaches for ambient global state.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue        *nats.Queue
	FileRepo     ports.FileRepository
	FolderRepo   ports.FolderRepository
	UploadUC     ports.FileUploader
	CategorizeUC ports.Categorizer
	FileUC       ports.FileService
	FolderUC     ports.FolderService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	fileRepo := postgres.NewFileRepository(db)
	folderRepo := postgres.NewFolderRepository(db)

	storage, err := s3.New(ctx, s3.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, logger, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init task queue: %w", err)
	}

	aiClient := ai.New(cfg.AIBaseURL, ai.Options{
		Timeout:            time.Duration(cfg.AITimeoutSeconds) * time.Second,
		CallsPerSecond:     float64(cfg.AICallsPerSecond),
		Burst:              cfg.AIBurst,
		ResilienceExecutor: resilience.NewExecutor(resilience.SingleAttempt()),
	})

	folderUC := usecase.NewFolderUseCase(folderRepo, fileRepo, storage, logger)
	uploadUC := usecase.NewUploadFileUseCase(fileRepo, folderRepo, storage, queue)
	categorizeUC := usecase.NewCategorizeUseCase(fileRepo, folderUC, storage, extractor.New(), aiClient, logger)
	fileUC := usecase.NewFileUseCase(fileRepo, storage, queue, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:        queue,
		FileRepo:     fileRepo,
		FolderRepo:   folderRepo,
		UploadUC:     uploadUC,
		CategorizeUC: categorizeUC,
		FileUC:       fileUC,
		FolderUC:     folderUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
