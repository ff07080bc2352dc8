package fraud

import (
	"math/rand"
	"net/netip"

	"fraud-data-simulator/internal/models"
)

const (
	LargeAmountThreshold     = 500.0  // крупная сумма
	VeryLargeAmountThreshold = 1000.0 // очень крупная сумма

	MinRiskScore = 0
	MaxRiskScore = 100
)

// Баллы за сигналы риска
const (
	largeAmountPoints     = 30
	veryLargeAmountPoints = 20
	unusualTimePoints     = 15
	onlineMerchantPoints  = 10
	digitalWalletPoints   = 5
	failedStatusPoints    = 25
	privateIPPoints       = 20
)

// Tuning параметры, которыми подгоняется итоговая доля мошенничества (2-3%)
type Tuning struct {
	Threshold       int     // транзакция выше порога может быть помечена как fraud
	GateProbability float64 // вероятность пометки при превышении порога
	NoiseMin        int
	NoiseMax        int
}

// DefaultTuning возвращает параметры по умолчанию
func DefaultTuning() Tuning {
	return Tuning{
		Threshold:       70,
		GateProbability: 0.30,
		NoiseMin:        -5,
		NoiseMax:        10,
	}
}

// Scorer вычисляет risk score и метку мошенничества
type Scorer struct {
	tuning Tuning
}

func NewScorer(tuning Tuning) *Scorer {
	if tuning.NoiseMax < tuning.NoiseMin {
		tuning.NoiseMin, tuning.NoiseMax = tuning.NoiseMax, tuning.NoiseMin
	}
	return &Scorer{tuning: tuning}
}

// Tuning возвращает текущие параметры
func (s *Scorer) Tuning() Tuning {
	return s.tuning
}

// BaseScore считает балл по правилам без шума
func BaseScore(tx *models.Transaction) (int, []string) {
	score := 0
	var flags []string

	// 1. Крупная сумма
	if tx.Amount > LargeAmountThreshold {
		score += largeAmountPoints
		flags = append(flags, "large_amount")
	}
	if tx.Amount > VeryLargeAmountThreshold {
		score += veryLargeAmountPoints
		flags = append(flags, "very_large_amount")
	}

	// 2. Необычное время (23:00 - 06:00)
	if IsUnusualHour(tx.Timestamp.Hour()) {
		score += unusualTimePoints
		flags = append(flags, "unusual_time")
	}

	// 3. Онлайн-мерчант
	if tx.MerchantCategory == "online" {
		score += onlineMerchantPoints
		flags = append(flags, "online_merchant")
	}

	// 4. Электронный кошелек
	if tx.PaymentMethod == "digital_wallet" {
		score += digitalWalletPoints
		flags = append(flags, "digital_wallet")
	}

	// 5. Неуспешная операция
	if tx.TransactionStatus == "failed" {
		score += failedStatusPoints
		flags = append(flags, "failed_status")
	}

	// 6. Частный диапазон IP
	if tx.PrivateIP || IsPrivateIP(tx.IPAddress) {
		score += privateIPPoints
		flags = append(flags, "private_ip")
	}

	return score, flags
}

// Evaluate считает risk score с шумом и выставляет IsFraud.
// Шум и вероятностный гейт берутся из rng, поэтому результат воспроизводим при фиксированном seed.
func (s *Scorer) Evaluate(tx *models.Transaction, rng *rand.Rand) {
	score, flags := BaseScore(tx)
	score += s.noise(rng)
	score = clamp(score, MinRiskScore, MaxRiskScore)

	tx.RiskScore = score
	tx.RiskFlags = flags
	tx.IsFraud = score > s.tuning.Threshold && rng.Float64() < s.tuning.GateProbability
}

func (s *Scorer) noise(rng *rand.Rand) int {
	return s.tuning.NoiseMin + rng.Intn(s.tuning.NoiseMax-s.tuning.NoiseMin+1)
}

// IsUnusualHour проверяет попадание часа в [23,24) или [0,6)
func IsUnusualHour(hour int) bool {
	return hour >= 23 || hour < 6
}

// IsPrivateIP проверяет, относится ли адрес к частному диапазону
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	return addr.IsPrivate()
}

// CalculateRiskLevel определяет уровень риска на основе баллов
func CalculateRiskLevel(score int) string {
	if score <= 30 {
		return "low"
	} else if score <= 70 {
		return "medium"
	}
	return "high"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
