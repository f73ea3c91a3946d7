package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	RoomStorageRedis  = "redis"
	RoomStorageMemory = "memory"
)

type Config struct {
	LogLevel          string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis    `yaml:"redis"`
	RoomStorage       string   `yaml:"room-storage" env:"ROOM_STORAGE" env-default:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"svoikit.db"`
	PostgresDSN       string   `yaml:"postgres-dsn" env:"POSTGRES_DSN"`
	JWTSecretKey      string   `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-required:"true"`
	Game              Game     `yaml:"game"`
	Admins            []string `yaml:"admins" env:"ADMINS" env-separator:","`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the bot timings and the stake the bot brings to a room.
type Game struct {
	BotJoinAfter     time.Duration `yaml:"bot-join-after" env-default:"60s"`
	BotCheckInterval time.Duration `yaml:"bot-check-interval" env-default:"5s"`
	BotMoveDelay     time.Duration `yaml:"bot-move-delay" env-default:"1s"`
	BotName          string        `yaml:"bot-name" env-default:"SVOIKIT Bot"`
	BotStakeItemID   string        `yaml:"bot-stake-item-id" env-default:"bot-token"`
	BotStakeItemName string        `yaml:"bot-stake-item-name" env-default:"Bot Token"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) validate() error {
	switch that.RoomStorage {
	case RoomStorageRedis, RoomStorageMemory:
	default:
		return fmt.Errorf("unknown room storage %q", that.RoomStorage)
	}

	if that.Game.BotCheckInterval <= 0 {
		return fmt.Errorf("bot-check-interval must be positive, got %s", that.Game.BotCheckInterval)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
