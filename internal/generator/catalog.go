package generator

// Категории мерчантов
const (
	CategoryOnline       = "online"
	CategoryRetail       = "retail"
	CategoryRestaurant   = "restaurant"
	CategoryGas          = "gas"
	CategoryTransport    = "transport"
	CategorySubscription = "subscription"
	CategoryFinancial    = "financial"
)

// Способы оплаты
const (
	PaymentCreditCard    = "credit_card"
	PaymentDebitCard     = "debit_card"
	PaymentDigitalWallet = "digital_wallet"
	PaymentBankTransfer  = "bank_transfer"
)

// Статусы транзакций
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusPending   = "pending"
)

// Merchant описывает мерчанта и диапазон сумм его категории
type Merchant struct {
	Name      string
	Category  string
	MinAmount float64
	MaxAmount float64
}

// ID возвращает идентификатор мерчанта в выгрузке
func (m Merchant) ID() string {
	return "merchant_" + m.Name
}

// Weighted значение с весом для взвешенного выбора
type Weighted struct {
	Value  string
	Weight int
}

// Диапазоны сумм по категориям
var categoryRanges = map[string][2]float64{
	CategoryRestaurant:   {5, 150},
	CategoryRetail:       {10, 500},
	CategoryGas:          {20, 100},
	CategoryOnline:       {15, 300},
	CategoryTransport:    {10, 80},
	CategorySubscription: {5, 50},
	CategoryFinancial:    {50, 1000},
}

var merchants = buildMerchants([][2]string{
	{"amazon", CategoryOnline},
	{"walmart", CategoryRetail},
	{"mcdonalds", CategoryRestaurant},
	{"shell", CategoryGas},
	{"starbucks", CategoryRestaurant},
	{"target", CategoryRetail},
	{"uber", CategoryTransport},
	{"netflix", CategorySubscription},
	{"paypal", CategoryFinancial},
	{"apple", CategoryOnline},
	{"google", CategoryOnline},
	{"microsoft", CategoryOnline},
})

// Страны и населенные пункты в формате "Город, Регион"
var localities = map[string][]string{
	"US": {"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX", "Phoenix, AZ", "Seattle, WA"},
	"GB": {"London, ENG", "Manchester, ENG", "Edinburgh, SCT", "Cardiff, WLS", "Belfast, NIR"},
	"DE": {"Berlin, BE", "Munich, BY", "Hamburg, HH", "Frankfurt, HE", "Cologne, NW"},
	"FR": {"Paris, IDF", "Lyon, ARA", "Marseille, PAC", "Toulouse, OCC", "Nice, PAC"},
	"CA": {"Toronto, ON", "Vancouver, BC", "Montreal, QC", "Calgary, AB", "Ottawa, ON"},
	"IN": {"Mumbai, MH", "Delhi, DL", "Bengaluru, KA", "Chennai, TN", "Hyderabad, TG"},
	"BR": {"Sao Paulo, SP", "Rio de Janeiro, RJ", "Brasilia, DF", "Salvador, BA", "Curitiba, PR"},
	"ZA": {"Johannesburg, GP", "Cape Town, WC", "Durban, KZN", "Pretoria, GP"},
	"NG": {"Lagos, LA", "Abuja, FC", "Kano, KN", "Ibadan, OY"},
	"CN": {"Beijing, BJ", "Shanghai, SH", "Shenzhen, GD", "Chengdu, SC", "Hangzhou, ZJ"},
	"RU": {"Moscow, MOW", "Saint Petersburg, SPE", "Novosibirsk, NVS", "Kazan, TA", "Yekaterinburg, SVE"},
}

// Порядок стран фиксирован, иначе выбор зависел бы от порядка обхода map
var countries = []string{"US", "GB", "DE", "FR", "CA", "IN", "BR", "ZA", "NG", "CN", "RU"}

var paymentMethods = []Weighted{
	{PaymentCreditCard, 45},
	{PaymentDebitCard, 35},
	{PaymentDigitalWallet, 15},
	{PaymentBankTransfer, 5},
}

var deviceTypes = []string{"mobile", "desktop", "tablet"}

var transactionTypes = []string{"purchase", "withdrawal", "transfer", "refund"}

var transactionStatuses = []Weighted{
	{StatusCompleted, 95},
	{StatusFailed, 4},
	{StatusPending, 1},
}

func buildMerchants(pairs [][2]string) []Merchant {
	result := make([]Merchant, 0, len(pairs))
	for _, p := range pairs {
		r := categoryRanges[p[1]]
		result = append(result, Merchant{Name: p[0], Category: p[1], MinAmount: r[0], MaxAmount: r[1]})
	}
	return result
}

// Merchants возвращает копию каталога мерчантов
func Merchants() []Merchant {
	return append([]Merchant(nil), merchants...)
}

// Countries возвращает копию списка стран
func Countries() []string {
	return append([]string(nil), countries...)
}

// Localities возвращает населенные пункты страны
func Localities(country string) []string {
	return append([]string(nil), localities[country]...)
}

// PaymentMethods возвращает таблицу весов способов оплаты
func PaymentMethods() []Weighted {
	return append([]Weighted(nil), paymentMethods...)
}

// DeviceTypes возвращает типы устройств
func DeviceTypes() []string {
	return append([]string(nil), deviceTypes...)
}

// TransactionTypes возвращает типы транзакций
func TransactionTypes() []string {
	return append([]string(nil), transactionTypes...)
}

// TransactionStatuses возвращает таблицу весов статусов
func TransactionStatuses() []Weighted {
	return append([]Weighted(nil), transactionStatuses...)
}

// Categories возвращает все категории каталога
func Categories() []string {
	seen := make(map[string]bool)
	var result []string
	for _, m := range merchants {
		if !seen[m.Category] {
			seen[m.Category] = true
			result = append(result, m.Category)
		}
	}
	return result
}
