package generator

import (
	"fmt"
	"math"
	"math/rand"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"fraud-data-simulator/internal/fraud"
	"fraud-data-simulator/internal/models"
)

const (
	// BusinessHoursProbability доля транзакций, которым время перевыбирается в 08:00-22:00
	BusinessHoursProbability = 0.7
	businessHourStart        = 8
	businessHourEnd          = 22

	// SmallAmountLimit и SmallAmountBias держат большую часть сумм ниже 300
	SmallAmountLimit = 300.0
	SmallAmountBias  = 0.7

	// FreshDeviceProbability доля транзакций с незнакомого устройства
	FreshDeviceProbability = 0.1

	// PatternAmountMax верхняя граница суммы записей по сценарию захвата аккаунта.
	// Такие суммы намеренно выходят за диапазон категории мерчанта
	PatternAmountMax = 2500.0

	historyYears = 2
)

// Часы, которые правила риска считают ночными
var unusualHours = []int{23, 0, 1, 2, 3, 4, 5}

// Options параметры генератора
type Options struct {
	Seed          int64
	ReferenceTime time.Time // конец двухлетнего окна; нулевое значение = time.Now()
	Tuning        fraud.Tuning

	// FraudPatternRate доля записей по сценарию захвата аккаунта:
	// ночное время, частный IP, новое устройство, сумма в (1000, PatternAmountMax]
	// независимо от категории мерчанта
	FraudPatternRate float64
	// PrivateIPRate доля обычных записей с IP из частного диапазона
	PrivateIPRate float64
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Seed:             42,
		Tuning:           fraud.DefaultTuning(),
		FraudPatternRate: 0.08,
		PrivateIPRate:    0.05,
	}
}

type TransactionGenerator struct {
	rand   *rand.Rand
	now    time.Time
	scorer *fraud.Scorer
	opts   Options
	pool   *UserPool
}

// NewTransactionGenerator создает генератор с заданными параметрами и случайным seed
// (для одиночных сэмплов через API)
func NewTransactionGenerator(opts Options) *TransactionGenerator {
	opts.Seed = time.Now().UnixNano()
	return NewSeededTransactionGenerator(opts)
}

// NewSeededTransactionGenerator создает детерминированный генератор
func NewSeededTransactionGenerator(opts Options) *TransactionGenerator {
	now := opts.ReferenceTime
	if now.IsZero() {
		now = time.Now()
	}
	if opts.Tuning == (fraud.Tuning{}) {
		opts.Tuning = fraud.DefaultTuning()
	}

	g := &TransactionGenerator{
		rand:   rand.New(rand.NewSource(opts.Seed)),
		now:    now.UTC().Truncate(time.Second),
		scorer: fraud.NewScorer(opts.Tuning),
		opts:   opts,
	}
	g.pool = g.NewUserPool(TransactionsPerUser * 1000)
	return g
}

// NewUserPool создает пул пользователей из того же источника случайности
func (g *TransactionGenerator) NewUserPool(totalRecords int) *UserPool {
	return newUserPool(g.newUUID(), totalRecords)
}

// ReferenceTime возвращает конец окна генерации
func (g *TransactionGenerator) ReferenceTime() time.Time {
	return g.now
}

// GenerateRandomTransaction генерирует одну транзакцию из внутреннего пула пользователей
func (g *TransactionGenerator) GenerateRandomTransaction() *models.Transaction {
	return g.GenerateTransaction(g.pool)
}

// GenerateTransaction генерирует транзакцию и вычисляет для нее risk score
func (g *TransactionGenerator) GenerateTransaction(pool *UserPool) *models.Transaction {
	pattern := g.rand.Float64() < g.opts.FraudPatternRate

	userID := pool.Pick(g.rand)
	merchant := merchants[g.rand.Intn(len(merchants))]
	country := countries[g.rand.Intn(len(countries))]
	ip := g.sampleIP(pattern)

	tx := &models.Transaction{
		TransactionID:     g.newUUID().String(),
		UserID:            userID,
		Timestamp:         g.sampleTimestamp(pattern),
		Amount:            g.sampleAmount(merchant, pattern),
		MerchantID:        merchant.ID(),
		MerchantCategory:  merchant.Category,
		PaymentMethod:     weightedChoice(g.rand, paymentMethods),
		IPAddress:         ip.String(),
		Geolocation:       g.sampleGeolocation(country),
		DeviceID:          g.sampleDevice(userID, pattern),
		DeviceType:        deviceTypes[g.rand.Intn(len(deviceTypes))],
		TransactionType:   transactionTypes[g.rand.Intn(len(transactionTypes))],
		TransactionStatus: weightedChoice(g.rand, transactionStatuses),
		Country:           country,
		PrivateIP:         ip.IsPrivate(),
		FraudPattern:      pattern,
	}

	g.scorer.Evaluate(tx, g.rand)
	return tx
}

// sampleTimestamp выбирает момент в окне [now-2y, now].
// В 70% случаев час перевыбирается в 08:00-22:00, иначе остается как есть
// (поэтому оставшиеся 30% тоже частично попадают в рабочие часы).
func (g *TransactionGenerator) sampleTimestamp(pattern bool) time.Time {
	start := g.now.AddDate(-historyYears, 0, 0)
	span := int64(g.now.Sub(start) / time.Second)
	ts := start.Add(time.Duration(g.rand.Int63n(span+1)) * time.Second)

	var hour int
	switch {
	case pattern:
		hour = unusualHours[g.rand.Intn(len(unusualHours))]
	case g.rand.Float64() < BusinessHoursProbability:
		hour = businessHourStart + g.rand.Intn(businessHourEnd-businessHourStart)
	default:
		return ts
	}

	ts = time.Date(ts.Year(), ts.Month(), ts.Day(), hour, ts.Minute(), ts.Second(), 0, time.UTC)
	// Смена часа может вывести момент за любую из границ окна
	if ts.After(g.now) {
		ts = ts.AddDate(0, 0, -1)
	}
	if ts.Before(start) {
		ts = ts.AddDate(0, 0, 1)
	}
	return ts
}

func (g *TransactionGenerator) sampleAmount(m Merchant, pattern bool) float64 {
	if pattern {
		return g.uniformAmount(fraud.VeryLargeAmountThreshold+0.01, PatternAmountMax)
	}

	amount := g.uniformAmount(m.MinAmount, m.MaxAmount)
	if amount > SmallAmountLimit && g.rand.Float64() < SmallAmountBias {
		amount = g.uniformAmount(m.MinAmount, SmallAmountLimit)
	}
	return amount
}

func (g *TransactionGenerator) uniformAmount(lo, hi float64) float64 {
	return roundToTwoDecimals(lo + g.rand.Float64()*(hi-lo))
}

func (g *TransactionGenerator) sampleIP(pattern bool) netip.Addr {
	if pattern || g.rand.Float64() < g.opts.PrivateIPRate {
		return g.privateIP()
	}
	return g.publicIP()
}

func (g *TransactionGenerator) privateIP() netip.Addr {
	switch g.rand.Intn(3) {
	case 0:
		return netip.AddrFrom4([4]byte{10, g.octet(), g.octet(), g.hostOctet()})
	case 1:
		return netip.AddrFrom4([4]byte{172, byte(16 + g.rand.Intn(16)), g.octet(), g.hostOctet()})
	default:
		return netip.AddrFrom4([4]byte{192, 168, g.octet(), g.hostOctet()})
	}
}

// publicIP избегает частных, loopback, link-local и CGNAT диапазонов
func (g *TransactionGenerator) publicIP() netip.Addr {
	for {
		first := byte(1 + g.rand.Intn(223))
		switch first {
		case 10, 100, 127, 169, 172, 192:
			continue
		}
		return netip.AddrFrom4([4]byte{first, g.octet(), g.octet(), g.hostOctet()})
	}
}

func (g *TransactionGenerator) octet() byte {
	return byte(g.rand.Intn(256))
}

func (g *TransactionGenerator) hostOctet() byte {
	return byte(1 + g.rand.Intn(254))
}

func (g *TransactionGenerator) sampleGeolocation(country string) string {
	locs := localities[country]
	return fmt.Sprintf("%s, %s", locs[g.rand.Intn(len(locs))], country)
}

func (g *TransactionGenerator) sampleDevice(userID string, pattern bool) string {
	if pattern || g.rand.Float64() < FreshDeviceProbability {
		return fmt.Sprintf("device_%04d", g.rand.Intn(10000))
	}
	return DeviceFor(userID)
}

// newUUID генерирует UUID v4 из источника генератора, чтобы выгрузка была воспроизводимой
func (g *TransactionGenerator) newUUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return uuid.New()
	}
	return id
}

func weightedChoice(rng *rand.Rand, items []Weighted) string {
	total := 0
	for _, it := range items {
		total += it.Weight
	}
	r := rng.Intn(total)
	for _, it := range items {
		if r < it.Weight {
			return it.Value
		}
		r -= it.Weight
	}
	return items[len(items)-1].Value
}

// roundToTwoDecimals округляет число до 2 знаков после запятой
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
