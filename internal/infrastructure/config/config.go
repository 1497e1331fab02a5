package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Refresh RefreshConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Maps    MapsConfig
	Device  DeviceConfig
}

type DeviceConfig struct {
	// Lat/Lng pin this terminal's position for the "use current position"
	// action; both must be set to enable it.
	Lat *float64 `env:"DEVICE_LAT"`
	Lng *float64 `env:"DEVICE_LNG"`
}

type RefreshConfig struct {
	// Interval between automatic snapshot refreshes while a shipment is in
	// transit.
	Interval time.Duration `env:"REFRESH_INTERVAL,  default=30s"`
	// StalenessTick drives the once-per-second staleness counter updates.
	StalenessTick time.Duration `env:"STALENESS_TICK,    default=1s"`
	// SnapshotTTL bounds how long a cached snapshot may serve as fallback.
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL,      default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shiptrace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MapsConfig struct {
	// APIKey enables the Google geocoder; leave empty to disable geocoding.
	APIKey string `env:"MAPS_API_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
