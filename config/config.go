package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"courtly"`

	// RabbitURL empty disables event publishing; RedisAddr empty disables
	// payment-window slot holds.
	RabbitURL     string `envconfig:"RABBITMQ_URL"`
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	Timezone string        `envconfig:"TIME_ZONE" default:"Asia/Jakarta"`
	HoldTTL  time.Duration `envconfig:"SLOT_HOLD_TTL" default:"2m"`

	PaymentSuccessRate float64       `envconfig:"PAYMENT_SUCCESS_RATE" default:"1.0"`
	PaymentDelay       time.Duration `envconfig:"PAYMENT_DELAY" default:"500ms"`
}

func Load() Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
