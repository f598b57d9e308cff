package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vasapolrittideah/todo-api/shared/security"
)

const EnvironmentProduction = "production"

// TodoServiceConfig is the full configuration of the todo service.
type TodoServiceConfig struct {
	Environment string `env:"APP_ENV"   envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Server   ServerConfig
	Mongo    MongoConfig
	Token    TokenConfig
	Password PasswordConfig
	CORS     CORSConfig
	Consul   ConsulConfig
}

type ServerConfig struct {
	Port int `env:"PORT" envDefault:"3000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"todo"`
}

// TokenConfig holds the session token settings. Secret may be empty; the
// affected requests then fail instead of the process.
type TokenConfig struct {
	Secret string `env:"JWT_SECRET"`
	Issuer string `env:"JWT_ISSUER" envDefault:"todo-api"`
}

type PasswordConfig struct {
	Algorithm  string `env:"PASSWORD_ALGORITHM" envDefault:"argon2id"`
	BcryptCost int    `env:"BCRYPT_COST"        envDefault:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type ConsulConfig struct {
	Addr        string `env:"CONSUL_ADDR"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"todo-service"`
	ServiceHost string `env:"SERVICE_HOST" envDefault:"localhost"`
}

// Load reads .env files when present and parses the environment.
func Load(files ...string) (*TodoServiceConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// godotenv never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	cfg, err := env.ParseAs[TodoServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *TodoServiceConfig) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

func (c *TodoServiceConfig) validate() error {
	var errs []error

	if strings.TrimSpace(c.Mongo.URI) == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Server.Port))
	}
	if c.Password.Algorithm != security.AlgorithmArgon2id && c.Password.Algorithm != security.AlgorithmBcrypt {
		errs = append(errs, fmt.Errorf("PASSWORD_ALGORITHM must be %q or %q", security.AlgorithmArgon2id, security.AlgorithmBcrypt))
	}
	if c.Token.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER must not be empty"))
	}

	return errors.Join(errs...)
}
