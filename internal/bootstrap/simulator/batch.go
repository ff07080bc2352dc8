package simulator

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/models"
)

// RunGenerator выполняет один прогон по настройкам из окружения и завершается
func RunGenerator() error {
	cfg := config.Load()

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("Error closing dependencies: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Generator.Seed
	summary, err := deps.DatasetService.RunDataset(ctx, &models.DatasetRequest{
		TotalRecords: cfg.Generator.TotalRecords,
		ChunkSize:    cfg.Generator.ChunkSize,
		Filename:     cfg.Generator.OutputFilename,
		Seed:         &seed,
	})
	if err != nil {
		return err
	}

	log.Printf("Dataset %s: %d records, %d chunks, fraud rate %.2f%%",
		summary.RunID, summary.RecordsWritten, summary.ChunksFlushed, summary.FraudRate*100)
	return nil
}
