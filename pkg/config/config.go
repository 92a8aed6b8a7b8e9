package config

import (
	"time"

	tlspkg "github.com/cloud-wave-best-zizon/storefront-service/pkg/tls"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// LocalMode points the DynamoDB client at a local endpoint with static
	// credentials instead of the AWS default chain.
	LocalMode      bool   `envconfig:"LOCAL_MODE" default:"true"`
	DynamoEndpoint string `envconfig:"DYNAMO_ENDPOINT" default:"http://localhost:8000"`

	UserTableName    string `envconfig:"USER_TABLE_NAME" default:"storefront-users"`
	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"storefront-products"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"storefront-orders"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	EventsEnabled bool   `envconfig:"EVENTS_ENABLED" default:"false"`
	KafkaBrokers  string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic    string `envconfig:"KAFKA_TOPIC" default:"order-events"`

	TLS tlspkg.TLSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
