package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/dataset"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/services"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName полное имя gRPC сервиса
const ServiceName = "fraudsim.v1.DatasetService"

// DatasetServiceServer методы gRPC сервиса. Запросы и ответы передаются как google.protobuf.Struct.
type DatasetServiceServer interface {
	GenerateSample(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	StartDataset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetDataset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type DatasetGRPCServer struct {
	service services.DatasetService
}

func NewDatasetGRPCServer(service services.DatasetService) *DatasetGRPCServer {
	return &DatasetGRPCServer{service: service}
}

// GenerateSample генерирует одну транзакцию
func (s *DatasetGRPCServer) GenerateSample(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	tx := s.service.GenerateSample()
	if tx == nil {
		return nil, status.Errorf(codes.Internal, "Failed to generate transaction")
	}

	resp, err := structpb.NewStruct(transactionFields(tx))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Failed to encode transaction: %v", err)
	}
	return resp, nil
}

// StartDataset запускает прогон генерации в фоне
func (s *DatasetGRPCServer) StartDataset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	datasetReq, err := datasetRequestFromStruct(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	response, err := s.service.StartDataset(datasetReq)
	if err != nil {
		if errors.Is(err, dataset.ErrInvalidTotalRecords) ||
			errors.Is(err, dataset.ErrInvalidChunkSize) ||
			errors.Is(err, services.ErrInvalidFilename) {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
		if errors.Is(err, services.ErrOutputInUse) {
			return nil, status.Errorf(codes.AlreadyExists, "%v", err)
		}
		log.Printf("Error starting dataset via gRPC: %v", err)
		return nil, status.Errorf(codes.Internal, "Failed to start dataset: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"run_id":      response.RunID,
		"status":      response.Status,
		"output_path": response.OutputPath,
		"message":     response.Message,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Failed to encode response: %v", err)
	}
	return resp, nil
}

// GetDataset возвращает состояние прогона и итог, если прогон завершен
func (s *DatasetGRPCServer) GetDataset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	runID := req.GetFields()["run_id"].GetStringValue()
	if runID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "run_id is required")
	}

	run, err := s.service.GetDataset(runID)
	if errors.Is(err, services.ErrRunNotFound) {
		return nil, status.Errorf(codes.NotFound, "Dataset not found")
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Failed to get dataset: %v", err)
	}

	fields := runFields(run)
	if summary, err := s.service.GetDatasetSummary(runID); err == nil {
		fields["fraud_rate"] = summary.FraudRate
		fields["risk_levels"] = riskLevelFields(summary.RiskLevels)
		if summary.ObjectKey != "" {
			fields["object_key"] = summary.ObjectKey
		}
	}

	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "Failed to encode response: %v", err)
	}
	return resp, nil
}

// NewServer создает gRPC сервер с зарегистрированным DatasetService
func NewServer(server DatasetServiceServer, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	RegisterDatasetServiceServer(s, server)
	return s
}

// StartGRPCServer запускает gRPC сервер. Возвращается после GracefulStop.
func StartGRPCServer(cfg *config.Config, s *grpc.Server) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Printf("gRPC server listening on port %d", cfg.Server.GRPCPort)
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func datasetRequestFromStruct(req *structpb.Struct) (*models.DatasetRequest, error) {
	fields := req.GetFields()

	total, ok := fields["total_records"]
	if !ok {
		return nil, fmt.Errorf("total_records is required")
	}

	datasetReq := &models.DatasetRequest{
		TotalRecords: int(total.GetNumberValue()),
		ChunkSize:    int(fields["chunk_size"].GetNumberValue()),
		Filename:     fields["filename"].GetStringValue(),
	}
	if datasetReq.TotalRecords <= 0 {
		return nil, fmt.Errorf("%w: got %d", dataset.ErrInvalidTotalRecords, datasetReq.TotalRecords)
	}
	if seed, ok := fields["seed"]; ok {
		v := int64(seed.GetNumberValue())
		datasetReq.Seed = &v
	}
	return datasetReq, nil
}

func transactionFields(tx *models.Transaction) map[string]interface{} {
	flags := make([]interface{}, 0, len(tx.RiskFlags))
	for _, f := range tx.RiskFlags {
		flags = append(flags, f)
	}

	return map[string]interface{}{
		"transaction_id":        tx.TransactionID,
		"user_id":               tx.UserID,
		"transaction_timestamp": tx.FormattedTimestamp(),
		"transaction_amount":    tx.FormattedAmount(),
		"merchant_id":           tx.MerchantID,
		"merchant_category":     tx.MerchantCategory,
		"payment_method":        tx.PaymentMethod,
		"ip_address":            tx.IPAddress,
		"geolocation":           tx.Geolocation,
		"device_id":             tx.DeviceID,
		"device_type":           tx.DeviceType,
		"transaction_type":      tx.TransactionType,
		"transaction_status":    tx.TransactionStatus,
		"is_fraud":              tx.IsFraud,
		"risk_score":            tx.RiskScore,
		"risk_flags":            flags,
	}
}

func runFields(run *models.DatasetRun) map[string]interface{} {
	fields := map[string]interface{}{
		"run_id":          run.RunID,
		"output_path":     run.OutputPath,
		"status":          run.Status,
		"total_records":   run.TotalRecords,
		"chunk_size":      run.ChunkSize,
		"seed":            run.Seed,
		"records_written": run.RecordsWritten,
		"chunks_flushed":  run.ChunksFlushed,
		"fraud_count":     run.FraudCount,
		"started_at":      run.StartedAt.UTC().Format(time.RFC3339),
	}
	if run.FinishedAt != nil {
		fields["finished_at"] = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	if run.ErrorMessage != nil {
		fields["error_message"] = *run.ErrorMessage
	}
	return fields
}

func riskLevelFields(levels map[string]int) map[string]interface{} {
	out := make(map[string]interface{}, len(levels))
	for level, n := range levels {
		out[level] = n
	}
	return out
}
