package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Cart      CartConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port string
}

// RESTConfig points at the canteen backend every page is rendered from.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type SecurityConfig struct {
	// JWTSecret and JWTPublicKey are optional; without them tokens are only checked for expiry
	// before being validated against /users/me.
	JWTSecret    string
	JWTPublicKey string
	CookieSecure bool
	SessionTTL   time.Duration
}

type CartConfig struct {
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	DatabaseURL   string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

type WebsocketConfig struct {
	SendBuffer int
}

const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

func Load() (*Config, error) {
	restTimeout, err := durationEnv("CANTEEN_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := durationEnv("SESSION_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cartTTL, err := durationEnv("CART_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv("CART_REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	sendBuffer, err := intEnv("WS_SEND_BUFFER", 8)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := boolEnv("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		REST: RESTConfig{
			BaseURL: getEnv("CANTEEN_API_URL", "http://localhost:3000"),
			Timeout: restTimeout,
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
			CookieSecure: cookieSecure,
			SessionTTL:   sessionTTL,
		},
		Cart: CartConfig{
			Store:         strings.ToLower(getEnv("CART_STORE", CartStoreMemory)),
			RedisAddr:     getEnv("CART_REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("CART_REDIS_PASSWORD"),
			RedisDB:       redisDB,
			TTL:           cartTTL,
			DatabaseURL:   os.Getenv("CART_DATABASE_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			GroupID: getEnv("KAFKA_GROUP_ID", "canteen-web"),
			Topic:   getEnv("KAFKA_ORDERS_TOPIC", "canteen.orders"),
		},
		Websocket: WebsocketConfig{
			SendBuffer: sendBuffer,
		},
	}

	switch cfg.Cart.Store {
	case CartStoreMemory, CartStoreRedis:
	case CartStorePostgres:
		if strings.TrimSpace(cfg.Cart.DatabaseURL) == "" {
			return nil, fmt.Errorf("CART_DATABASE_URL required when CART_STORE=%s", CartStorePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported CART_STORE %q", cfg.Cart.Store)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
