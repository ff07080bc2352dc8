package main

import "fraud-data-simulator/internal/bootstrap/simulator"

// @title Fraud Data Simulator API
// @version 1.0
// @description Генератор синтетических транзакций для обучения antifraud-моделей
// @host localhost:8080
// @BasePath /api/v1
func main() { simulator.StartSimulatorService() }
