package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CANTEEN_API_URL", "CANTEEN_API_TIMEOUT", "CART_STORE", "KAFKA_BROKERS", "KAFKA_BROKER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Server.Port)
	}
	if cfg.REST.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected base url: %s", cfg.REST.BaseURL)
	}
	if cfg.REST.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.REST.Timeout)
	}
	if cfg.Cart.Store != CartStoreMemory {
		t.Fatalf("unexpected cart store: %s", cfg.Cart.Store)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadParsesBrokersAndDurations(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("CANTEEN_API_TIMEOUT", "3s")
	t.Setenv("CART_STORE", "REDIS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.REST.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.REST.Timeout)
	}
	if cfg.Cart.Store != CartStoreRedis {
		t.Fatalf("expected redis store, got %s", cfg.Cart.Store)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad timeout":       {"CANTEEN_API_TIMEOUT", "soon"},
		"unknown store":     {"CART_STORE", "mongo"},
		"postgres no url":   {"CART_STORE", "postgres"},
		"bad cookie secure": {"COOKIE_SECURE", "maybe"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CART_DATABASE_URL", "")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
