package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	SERVICE_ROOMS    = "rooms"
	SERVICE_BOOKINGS = "bookings"
	SERVICE_PAYMENTS = "payments"
	SERVICE_ALL      = "all"
)

const (
	STORE_POSTGRES = "postgres"
	STORE_DYNAMODB = "dynamodb"
	STORE_REDIS    = "redis"
	STORE_MEMORY   = "memory"
)

// Dates accepted by the availability check.
var DATE_PARSE_FORMATS = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05 -07:00",
}

var defaultPorts = map[string]string{
	SERVICE_ROOMS:    "3001",
	SERVICE_BOOKINGS: "3002",
	SERVICE_PAYMENTS: "3003",
	SERVICE_ALL:      "9090",
}

type Config struct {
	Env     string `envconfig:"API_ENV" default:"production"`
	Service string `envconfig:"HMS_SERVICE" default:"all"`
	Port    string `envconfig:"PORT"`

	StoreDriver         string `envconfig:"STORE_DRIVER" default:"postgres"`
	RoomsTableName      string `envconfig:"ROOMS_TABLE_NAME" default:"rooms"`
	BookingsTableName   string `envconfig:"BOOKINGS_TABLE_NAME" default:"bookings"`
	PaymentsTableName   string `envconfig:"PAYMENTS_TABLE_NAME" default:"payments"`
	DatabaseHost        string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort        string `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseSSLMode     string `envconfig:"DATABASE_SSLMODE" default:"disable"`
	DatabaseTimezone    string `envconfig:"DATABASE_TIMEZONE" default:"UTC"`
	DatabaseUser        string `envconfig:"DATABASE_USER" default:"postgres"`
	DatabasePassword    string `envconfig:"DATABASE_PASSWORD"`
	DatabaseName        string `envconfig:"DATABASE_NAME" default:"hms"`
	DatabaseSecretID    string `envconfig:"DATABASE_SECRET_ID"`
	DatabaseAutoMigrate bool   `envconfig:"DATABASE_AUTO_MIGRATE" default:"true"`

	RedisHost string `envconfig:"REDIS_HOST"`

	AWSRegion        string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSIAMRoleARN    string `envconfig:"AWS_IAM_ROLE_ARN"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`

	EventsDriver   string `envconfig:"EVENTS_DRIVER" default:"none"`
	EventsTopicARN string `envconfig:"EVENTS_TOPIC_ARN"`
	EventsQueueURL string `envconfig:"EVENTS_QUEUE_URL"`
	EventsTopic    string `envconfig:"EVENTS_TOPIC" default:"hms-events"`
	KafkaBroker    string `envconfig:"KAFKA_BROKER" default:"localhost:9092"`

	PaymentGateway      string  `envconfig:"PAYMENT_GATEWAY" default:"simulated"`
	PaymentFailureRate  float64 `envconfig:"PAYMENT_FAILURE_RATE" default:"0.1"`
	PaymentCurrency     string  `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	StripeSecretKey     string  `envconfig:"STRIPE_SECRET_KEY"`
	StripePaymentMethod string  `envconfig:"STRIPE_PAYMENT_METHOD" default:"pm_card_visa"`

	RateLimit string `envconfig:"RATE_LIMIT"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"logs/server.log"`
}

// Load reads the process environment. A .env file in the working directory
// is loaded first when API_ENV=local.
func Load() (*Config, error) {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("processing env: %w", err)
	}
	c.Service = strings.ToLower(strings.TrimSpace(c.Service))
	switch c.Service {
	case SERVICE_ROOMS, SERVICE_BOOKINGS, SERVICE_PAYMENTS, SERVICE_ALL:
	default:
		return nil, fmt.Errorf("unknown HMS_SERVICE %q", c.Service)
	}
	if c.PaymentFailureRate < 0 || c.PaymentFailureRate > 1 {
		return nil, fmt.Errorf("PAYMENT_FAILURE_RATE must be within [0,1], got %v", c.PaymentFailureRate)
	}
	return &c, nil
}

func (c *Config) ListenAddr() string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return ":" + defaultPorts[c.Service]
}

// Serves reports whether the process mounts the handlers of the given service.
func (c *Config) Serves(service string) bool {
	return c.Service == SERVICE_ALL || c.Service == service
}

func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", c.DatabaseHost, c.DatabaseUser, c.DatabasePassword, c.DatabaseName, c.DatabasePort, c.DatabaseSSLMode, c.DatabaseTimezone)
}
