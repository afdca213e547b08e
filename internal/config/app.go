package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Source struct {
	PrimaryURL      string `mapstructure:"primary_url"`
	BackupPath      string `mapstructure:"backup_path"`
	Anchor          string `mapstructure:"anchor"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
	CacheMaxItems   int64  `mapstructure:"cache_max_items"`
}

type Converter struct {
	Base string `mapstructure:"base"`
}

type Format struct {
	Precision        int32  `mapstructure:"precision"`
	DecimalSeparator string `mapstructure:"decimal_separator"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

// Currencies selects where the closed set of currency codes comes from:
// "builtin" (ISO 4217) or "postgres".
type Currencies struct {
	Source string `mapstructure:"source"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Source     Source     `mapstructure:"source"`
	Converter  Converter  `mapstructure:"converter"`
	Format     Format     `mapstructure:"format"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Currencies Currencies `mapstructure:"currencies"`
}

const defaultConfigFile = "config.yaml"

func Init() (*AppConfig, error) {
	return Load(defaultConfigFile)
}

// Load reads configFile and the environment. A missing config file or .env
// is not an error; defaults apply.
func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if _, statErr := os.Stat(configFile); statErr == nil {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("db_server.max_conns", 10)

	v.SetDefault("source.primary_url", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml")
	v.SetDefault("source.backup_path", "data/eurofxref-daily.xml")
	v.SetDefault("source.anchor", "EUR")
	v.SetDefault("source.cache_ttl_seconds", 300)
	v.SetDefault("source.cache_max_items", 16)

	v.SetDefault("converter.base", "EUR")
	v.SetDefault("format.precision", 4)
	v.SetDefault("format.decimal_separator", ".")
	v.SetDefault("scheduler.refresh_interval_sec", 3600)
	v.SetDefault("currencies.source", "builtin")
}

func bindEnv(v *viper.Viper) {
	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// rate source env vars
	_ = v.BindEnv("source.primary_url", "SOURCE_PRIMARY_URL")
	_ = v.BindEnv("source.backup_path", "SOURCE_BACKUP_PATH")
	_ = v.BindEnv("converter.base", "CONVERTER_BASE")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("currencies.source", "CURRENCIES_SOURCE")
}

func (cfg *AppConfig) validate() error {
	switch cfg.Currencies.Source {
	case "builtin", "postgres":
	default:
		return fmt.Errorf("unsupported currencies source %q", cfg.Currencies.Source)
	}
	if cfg.Format.Precision < 0 {
		return fmt.Errorf("format precision must not be negative, got %d", cfg.Format.Precision)
	}
	if cfg.Source.PrimaryURL == "" && cfg.Source.BackupPath == "" {
		return errors.New("at least one rate source is required")
	}
	return nil
}
