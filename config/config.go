// Package config loads the orderbook settings from defaults, an optional
// orderbook.yaml and ORDERBOOK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"orderbook/services"
)

// EnvPrefix is prepended to every environment override, e.g.
// ORDERBOOK_COMPANY_NAME or ORDERBOOK_ORDERS_PAGE_SIZE.
const EnvPrefix = "ORDERBOOK"

// Config holds all application configuration.
type Config struct {
	Company  CompanyConfig `mapstructure:"company"`
	Orders   OrdersConfig  `mapstructure:"orders"`
	Export   ExportConfig  `mapstructure:"export"`
	Logging  LoggingConfig `mapstructure:"logging"`
	SeedDemo bool          `mapstructure:"seed_demo"`
}

// CompanyConfig is the letterhead printed on order documents.
type CompanyConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	GSTIN   string `mapstructure:"gstin"`
}

// OrdersConfig holds order form and list defaults.
type OrdersConfig struct {
	DefaultGSTPercent float64 `mapstructure:"default_gst_percent"`
	PageSize          int     `mapstructure:"page_size"`
}

// ExportConfig holds where exports land when no path is given.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration. An empty file means "orderbook.yaml in the
// working directory, if there is one"; an explicit file must exist.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("orderbook")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("company.name", "Order Book")
	v.SetDefault("company.address", "")
	v.SetDefault("company.email", "")
	v.SetDefault("company.phone", "")
	v.SetDefault("company.gstin", "")

	v.SetDefault("orders.default_gst_percent", services.DefaultGSTPercent)
	v.SetDefault("orders.page_size", services.DefaultPageSize)

	v.SetDefault("export.dir", "exports")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("seed_demo", false)
}

// Validate checks value ranges after all sources are merged.
func (c Config) Validate() error {
	return validation.Errors{
		"company": validation.ValidateStruct(&c.Company,
			validation.Field(&c.Company.Name, validation.Required),
		),
		"orders": validation.ValidateStruct(&c.Orders,
			validation.Field(&c.Orders.DefaultGSTPercent, validation.Min(0.0), validation.Max(100.0)),
			validation.Field(&c.Orders.PageSize, validation.Required, validation.Min(1), validation.Max(500)),
		),
		"logging": validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In("trace", "debug", "info", "warn", "error")),
			validation.Field(&c.Logging.Format, validation.In("console", "json")),
		),
	}.Filter()
}

// CompanyInfo converts the letterhead settings for the document builders.
func (c Config) CompanyInfo() services.CompanyInfo {
	return services.CompanyInfo{
		Name:    c.Company.Name,
		Address: c.Company.Address,
		Email:   c.Company.Email,
		Phone:   c.Company.Phone,
		GSTIN:   c.Company.GSTIN,
	}
}

// LogLevel is the zerolog level for Logging.Level, defaulting to info.
func (c Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
