package config

import (
	"strings"

	"github.com/flexcart/flexcart/internal/validator"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration is the root application configuration, loaded from
// config files and FLEXCART_* environment variables.
type Configuration struct {
	Server      ServerConfig      `mapstructure:"server"`
	Postgres    PostgresConfig    `mapstructure:"postgres"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	StoreCredit StoreCreditConfig `mapstructure:"store_credit"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	FluentdEnabled bool   `mapstructure:"fluentd_enabled"`
	FluentdHost    string `mapstructure:"fluentd_host"`
	FluentdPort    int    `mapstructure:"fluentd_port"`
}

// StoreCreditConfig holds the store-credit policy knobs.
// MinOrderTotal is the floor the order total must not fall under after the
// credit discount is applied, unless the credit covers the total exactly.
type StoreCreditConfig struct {
	Currency      string          `mapstructure:"currency" validate:"required"`
	MinOrderTotal decimal.Decimal `mapstructure:"min_order_total"`
}

// NewConfig loads configuration from ./config.yaml (optional), .env (optional)
// and FLEXCART_* environment variables.
func NewConfig() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("FLEXCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decimalDecodeHook())); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Configuration) Validate() error {
	return validator.ValidateRequest(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "flexcart")
	v.SetDefault("postgres.dbname", "flexcart")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("logging.level", "info")
	v.SetDefault("store_credit.currency", "usd")
	v.SetDefault("store_credit.min_order_total", "0")
}

// GetDefaultConfig returns a config suitable for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:   ServerConfig{Address: ":8080"},
		Postgres: PostgresConfig{Host: "localhost", Port: 5432, User: "flexcart", DBName: "flexcart", SSLMode: "disable"},
		Logging:  LoggingConfig{Level: "debug"},
		StoreCredit: StoreCreditConfig{
			Currency:      "usd",
			MinOrderTotal: decimal.Zero,
		},
	}
}
