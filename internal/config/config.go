// Package config loads runtime settings from defaults, an optional config
// file, an optional .env file and BSPRICE_* environment variables, in
// increasing order of precedence.
package config

import (
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override,
// e.g. BSPRICE_DISPLAY_LOCALE=en.
const EnvPrefix = "BSPRICE"

// DotEnvFile is read when present.
var DotEnvFile = ".env"

// Config struct
type Config struct {
	Verbosity int           `mapstructure:"verbosity" validate:"gte=0,lte=3"` // 0=errors,1=info,2=debug,3=trace
	Workers   int           `mapstructure:"workers" validate:"gte=0,lte=256"` // grid goroutines, 0/1 = sequential
	Display   DisplayConfig `mapstructure:"display"`
	Heatmap   HeatmapConfig `mapstructure:"heatmap"`
	Server    ServerConfig  `mapstructure:"server"`
}

// DisplayConfig is presentation configuration, never engine behaviour.
type DisplayConfig struct {
	Locale         string          `mapstructure:"locale" validate:"oneof=fr en"`
	CurrencySymbol string          `mapstructure:"currency_symbol" validate:"required"`
	Decimals       int             `mapstructure:"decimals" validate:"gte=0,lte=10"`
	Color          bool            `mapstructure:"color"`
	Moneyness      MoneynessConfig `mapstructure:"moneyness"`
}

// MoneynessConfig holds the S/K thresholds of the status line.
type MoneynessConfig struct {
	ITM float64 `mapstructure:"itm" validate:"gt=0,gtefield=OTM"`
	OTM float64 `mapstructure:"otm" validate:"gt=0"`
}

// HeatmapConfig holds sweep defaults.
type HeatmapConfig struct {
	Count    int     `mapstructure:"count" validate:"gte=1,lte=200"`
	CallCost float64 `mapstructure:"call_cost"`
	PutCost  float64 `mapstructure:"put_cost"`
}

// ServerConfig configures the dashboard API.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	MaxCount int    `mapstructure:"max_count" validate:"gte=1"`
	Mode     string `mapstructure:"mode" validate:"oneof=debug release test"`
}

// SetDefaults registers every key so that environment overrides apply
// during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbosity", 1)
	v.SetDefault("workers", 1)

	v.SetDefault("display.locale", "fr")
	v.SetDefault("display.currency_symbol", "€")
	v.SetDefault("display.decimals", 4)
	v.SetDefault("display.color", true)
	v.SetDefault("display.moneyness.itm", 1.05)
	v.SetDefault("display.moneyness.otm", 0.95)

	v.SetDefault("heatmap.count", 10)
	v.SetDefault("heatmap.call_cost", 10.0)
	v.SetDefault("heatmap.put_cost", 10.0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_count", 50)
	v.SetDefault("server.mode", "release")
}

// Load resolves the configuration. path may be empty. Flags bound to v
// beforehand take precedence over everything else.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, "loading %s", path)
}
