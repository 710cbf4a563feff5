package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	MongoURI       string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName    string        `envconfig:"MONGO_DB_NAME" default:"shopdb"`
	MongoMaxPool   uint64        `envconfig:"MONGO_MAX_POOL_SIZE" default:"100"`
	MongoMinPool   uint64        `envconfig:"MONGO_MIN_POOL_SIZE" default:"10"`
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD" default:""`
	KafkaBrokers   string        `envconfig:"KAFKA_BROKERS" default:""`
	OrderTopic     string        `envconfig:"ORDER_TOPIC" default:"order-created"`
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
