package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Storage    string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis   `yaml:"redis"`
	History    History `yaml:"history"`
	Auth       Auth    `yaml:"auth"`
	Bot        Bot     `yaml:"bot"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

type History struct {
	SQLitePath string `yaml:"sqlite-path" env:"HISTORY_SQLITE_PATH" env-default:"./data/history.db"`
}

type Auth struct {
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token-ttl" env:"JWT_TOKEN_TTL" env-default:"168h"`
}

type Bot struct {
	ParityAttempts int   `yaml:"parity-attempts" env:"BOT_PARITY_ATTEMPTS" env-default:"9"`
	Seed           int64 `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage %q, expected %q or %q", that.Storage, StorageMemory, StorageRedis)
	}

	if that.Bot.ParityAttempts <= 0 {
		return fmt.Errorf("bot parity attempts must be positive, got %d", that.Bot.ParityAttempts)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Terminal is the environment-only configuration of the terminal binary.
type Terminal struct {
	BotSeed        int64 `env:"BOT_SEED" env-default:"0"`
	ParityAttempts int   `env:"BOT_PARITY_ATTEMPTS" env-default:"9"`
	NoColor        bool  `env:"NO_COLOR" env-default:"false"`
}

func LoadTerminal() (*Terminal, error) {
	config := &Terminal{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}
