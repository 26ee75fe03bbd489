package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Cache
	Workers
	Server
	Gateway
	Webhook
	Delivery
	Reclaim
}

type Cache struct {
	Host     string
	Port     string
	Password string
}

type Workers struct {
	FulfillmentCount      int
	FulfillmentBufferSize int
}

type Server struct {
	Port string
}

type Gateway struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	Currency      string
	DefaultAmount int64
}

type Webhook struct {
	Secret          string
	SignatureHeader string
	SignatureScheme string
	HashFields      []string
}

type Delivery struct {
	Mode           string
	BotToken       string
	TelegramAPIURL string
	FileURL        string
	Caption        string
}

type Reclaim struct {
	Interval   time.Duration
	StaleAfter time.Duration
}

func NewConfig() *Config {
	// Optional; containers inject plain env vars instead.
	_ = godotenv.Load()

	return &Config{
		Cache: Cache{
			Host:     getEnvString("CACHE_HOST", "localhost"),
			Port:     getEnvString("CACHE_PORT", "6379"),
			Password: getEnvString("CACHE_PASSWORD", ""),
		},
		Workers: Workers{
			FulfillmentCount:      getEnvInt("FULFILLMENT_WORKERS_COUNT", 5),
			FulfillmentBufferSize: getEnvInt("FULFILLMENT_EVENTS_BUFFER_SIZE", 100),
		},
		Server: Server{
			Port: getEnvString("SERVER_PORT", "8080"),
		},
		Gateway: Gateway{
			BaseURL:       getEnvString("GATEWAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:         getEnvString("GATEWAY_KEY_ID", ""),
			KeySecret:     getEnvString("GATEWAY_KEY_SECRET", ""),
			Currency:      getEnvString("GATEWAY_CURRENCY", "INR"),
			DefaultAmount: getEnvInt64("GATEWAY_DEFAULT_AMOUNT", 100),
		},
		Webhook: Webhook{
			Secret:          getEnvString("WEBHOOK_SECRET", ""),
			SignatureHeader: getEnvString("WEBHOOK_SIG_HEADER", "X-Razorpay-Signature"),
			SignatureScheme: getEnvString("WEBHOOK_SIG_SCHEME", "hmac-body"),
			HashFields:      getEnvList("WEBHOOK_HASH_FIELDS", "status|order_id|amount"),
		},
		Delivery: Delivery{
			Mode:           getEnvString("DELIVERY_MODE", "document"),
			BotToken:       getEnvString("TELEGRAM_BOT_TOKEN", ""),
			TelegramAPIURL: getEnvString("TELEGRAM_API_URL", "https://api.telegram.org"),
			FileURL:        getEnvString("DELIVERY_FILE_URL", ""),
			Caption:        getEnvString("DELIVERY_CAPTION", "Payment received! Here is your file. Thank you!"),
		},
		Reclaim: Reclaim{
			Interval:   getEnvDuration("RECLAIM_INTERVAL", 30*time.Second),
			StaleAfter: getEnvDuration("RECLAIM_STALE_AFTER", 2*time.Minute),
		},
	}
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getEnvList(key string, defaultValue string) []string {
	value := getEnvString(key, defaultValue)

	var fields []string
	for _, field := range strings.Split(value, "|") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}

	return fields
}
