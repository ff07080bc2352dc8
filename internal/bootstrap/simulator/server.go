package simulator

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fraud-data-simulator/docs" // Swagger docs
	"fraud-data-simulator/internal/api/rest"
	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/grpc"
)

// StartSimulatorService запускает HTTP и gRPC API генератора
func StartSimulatorService() {
	cfg := config.Load()

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("Error closing dependencies: %v", err)
		}
	}()

	// Настройка REST API
	handlers := rest.NewHandlers(deps.DatasetService)
	router := rest.SetupRouter(handlers, deps.Metrics.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Printf("Fraud Data Simulator starting on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Запуск gRPC сервера в отдельной горутине
	grpcServer := grpc.NewServer(grpc.NewDatasetGRPCServer(deps.DatasetService))
	go func() {
		if err := grpc.StartGRPCServer(cfg, grpcServer); err != nil {
			log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	grpcServer.GracefulStop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
