package services

import (
	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/fraud"
	"fraud-data-simulator/internal/generator"
)

// GeneratorOptions собирает параметры генератора из конфигурации
func GeneratorOptions(cfg *config.Config) generator.Options {
	return generator.Options{
		Seed:          cfg.Generator.Seed,
		ReferenceTime: cfg.Generator.ReferenceTime,
		Tuning: fraud.Tuning{
			Threshold:       cfg.Fraud.Threshold,
			GateProbability: cfg.Fraud.GateProbability,
			NoiseMin:        cfg.Fraud.NoiseMin,
			NoiseMax:        cfg.Fraud.NoiseMax,
		},
		FraudPatternRate: cfg.Fraud.FraudPatternRate,
		PrivateIPRate:    cfg.Fraud.PrivateIPRate,
	}
}
