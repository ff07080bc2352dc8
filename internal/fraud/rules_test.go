package fraud

import (
	"math/rand"
	"testing"
	"time"

	"fraud-data-simulator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowRiskTransaction() *models.Transaction {
	return &models.Transaction{
		TransactionID:     "TXN-001",
		Amount:            120.50, // Небольшая сумма
		Timestamp:         time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), // Обычное время
		MerchantCategory:  "retail",
		PaymentMethod:     "credit_card",
		TransactionStatus: "completed",
		IPAddress:         "8.8.8.8",
	}
}

func TestNewScorer(t *testing.T) {
	scorer := NewScorer(DefaultTuning())
	require.NotNil(t, scorer)
	assert.Equal(t, DefaultTuning(), scorer.Tuning())

	// Перепутанные границы шума исправляются
	swapped := NewScorer(Tuning{Threshold: 70, GateProbability: 0.3, NoiseMin: 10, NoiseMax: -5})
	assert.Equal(t, -5, swapped.Tuning().NoiseMin)
	assert.Equal(t, 10, swapped.Tuning().NoiseMax)
}

func TestBaseScore_LowRisk(t *testing.T) {
	score, flags := BaseScore(lowRiskTransaction())
	assert.Equal(t, 0, score)
	assert.Empty(t, flags)
}

func TestBaseScore_AllSignals(t *testing.T) {
	tx := &models.Transaction{
		Amount:            1500,
		Timestamp:         time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC),
		MerchantCategory:  "online",
		PaymentMethod:     "digital_wallet",
		TransactionStatus: "failed",
		IPAddress:         "192.168.1.10",
	}

	score, flags := BaseScore(tx)
	assert.Equal(t, 30+20+15+10+5+25+20, score)
	assert.ElementsMatch(t, []string{
		"large_amount", "very_large_amount", "unusual_time", "online_merchant",
		"digital_wallet", "failed_status", "private_ip",
	}, flags)
}

func TestBaseScore_AmountBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected int
	}{
		{"AtLargeThreshold", 500, 0},
		{"AboveLargeThreshold", 500.01, 30},
		{"AtVeryLargeThreshold", 1000, 30},
		{"AboveVeryLargeThreshold", 1000.01, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := lowRiskTransaction()
			tx.Amount = tt.amount
			score, _ := BaseScore(tx)
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestIsUnusualHour(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		expected := hour >= 23 || hour < 6
		assert.Equal(t, expected, IsUnusualHour(hour), "hour %d", hour)
	}
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("172.16.0.1"))
	assert.True(t, IsPrivateIP("172.31.255.254"))
	assert.True(t, IsPrivateIP("192.168.0.1"))
	assert.False(t, IsPrivateIP("172.32.0.1"))
	assert.False(t, IsPrivateIP("8.8.8.8"))
	assert.False(t, IsPrivateIP("not-an-ip"))
}

func TestScorer_Evaluate_ScoreClamped(t *testing.T) {
	scorer := NewScorer(DefaultTuning())
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		low := lowRiskTransaction()
		scorer.Evaluate(low, rng)
		assert.GreaterOrEqual(t, low.RiskScore, 0)
		assert.LessOrEqual(t, low.RiskScore, 10)
		assert.False(t, low.IsFraud)

		high := lowRiskTransaction()
		high.Amount = 2000
		high.TransactionStatus = "failed"
		high.IPAddress = "10.0.0.1"
		high.Timestamp = time.Date(2024, 1, 15, 2, 0, 0, 0, time.UTC)
		scorer.Evaluate(high, rng)
		assert.Equal(t, 100, high.RiskScore)
	}
}

func TestScorer_Evaluate_FraudImpliesThreshold(t *testing.T) {
	scorer := NewScorer(Tuning{Threshold: 70, GateProbability: 1, NoiseMin: -5, NoiseMax: 10})
	rng := rand.New(rand.NewSource(2))

	tx := lowRiskTransaction()
	tx.Amount = 1500
	tx.IPAddress = "10.0.0.1"
	scorer.Evaluate(tx, rng)

	// 50 + 20 + шум не больше 10 никогда не превышает 80, но всегда выше 64
	assert.GreaterOrEqual(t, tx.RiskScore, 65)
	assert.Equal(t, tx.RiskScore > 70, tx.IsFraud)
}

func TestScorer_Evaluate_Gate(t *testing.T) {
	tuning := DefaultTuning()
	tuning.GateProbability = 0
	scorer := NewScorer(tuning)
	rng := rand.New(rand.NewSource(3))

	tx := lowRiskTransaction()
	tx.Amount = 2000
	tx.TransactionStatus = "failed"
	tx.IPAddress = "10.0.0.1"
	scorer.Evaluate(tx, rng)
	assert.Greater(t, tx.RiskScore, 70)
	assert.False(t, tx.IsFraud, "gate probability 0 should never flag")
}

func TestScorer_Evaluate_GateRate(t *testing.T) {
	scorer := NewScorer(DefaultTuning())
	rng := rand.New(rand.NewSource(4))

	const n = 10000
	flagged := 0
	for i := 0; i < n; i++ {
		tx := lowRiskTransaction()
		tx.Amount = 2000
		tx.TransactionStatus = "failed"
		tx.IPAddress = "10.0.0.1"
		scorer.Evaluate(tx, rng)
		if tx.IsFraud {
			flagged++
		}
	}
	assert.InDelta(t, 0.30, float64(flagged)/n, 0.03)
}

func TestCalculateRiskLevel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{0, "low"},
		{30, "low"},
		{31, "medium"},
		{70, "medium"},
		{71, "high"},
		{100, "high"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CalculateRiskLevel(tt.score), "score %d", tt.score)
	}
}
