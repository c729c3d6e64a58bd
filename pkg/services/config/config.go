package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "SALES_ATLAS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout" validate:"gte=0"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig caps API requests per client IP. Zero requests disables it.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests" validate:"gte=0"`
	Window   time.Duration `mapstructure:"window" validate:"required_with=Requests"`
}

type DashboardConfig struct {
	Title    string `mapstructure:"title" validate:"required"`
	Seed     int64  `mapstructure:"seed"`
	Currency string `mapstructure:"currency" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit.requests", 100)
	v.SetDefault("server.rate_limit.window", time.Minute)
	v.SetDefault("dashboard.title", "Online Sales Panel S.A.")
	v.SetDefault("dashboard.seed", 42)
	v.SetDefault("dashboard.currency", "R$")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// LoadConfig reads the optional YAML file at path and overlays SALES_ATLAS_*
// environment variables, e.g. SALES_ATLAS_SERVER_PORT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

var validate = validator.New()

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
