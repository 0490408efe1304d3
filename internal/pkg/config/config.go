package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	// AdminRoles lists the roles allowed on the /admin surface. Empty
	// leaves the admin routes ungated.
	AdminRoles []string `env:"ADMIN_ROLES"`
}

type SessionConfig struct {
	// Secret signs the session cookie.
	Secret string `env:"SESSION_SECRET, default=dev-session-secret"`
	// TTL bounds both the cookie lifetime and the server-side session.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// Backend selects the session store: "memory" or "redis".
	Backend string `env:"SESSION_BACKEND, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
