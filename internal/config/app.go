package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
	// Migrate applies embedded migrations at startup.
	Migrate bool `mapstructure:"migrate"`
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

type RatesAPI struct {
	BaseURL string `mapstructure:"base_url"`
}

type Scheduler struct {
	RefreshIntervalSec int  `mapstructure:"refresh_interval_sec"`
	RunOnStart         bool `mapstructure:"run_on_start"`
}

type Rates struct {
	StaleAfter    time.Duration `mapstructure:"stale_after"`
	AsOfTolerance time.Duration `mapstructure:"as_of_tolerance"`
	Bases         []string      `mapstructure:"bases"`
}

type Sessions struct {
	MaxItems int64         `mapstructure:"max_items"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type Defaults struct {
	BaseCurrency string `mapstructure:"base_currency"`
	FxSource     string `mapstructure:"fx_source"`
	RoundingMode string `mapstructure:"rounding_mode"`
	Timezone     string `mapstructure:"timezone"`
}

type Display struct {
	MaxVisibleBadges int      `mapstructure:"max_visible_badges"`
	Defaults         Defaults `mapstructure:"defaults"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RatesAPI   RatesAPI   `mapstructure:"rates_api"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Rates      Rates      `mapstructure:"rates"`
	Sessions   Sessions   `mapstructure:"sessions"`
	Display    Display    `mapstructure:"display"`
	Logging    Logging    `mapstructure:"logging"`
}

// Init reads .env (optional) and the yaml config file, then applies env
// overrides.
func Init(configFile string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	setDefaults(v)
	bindEnv(v)

	var cfg AppConfig
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
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("db_server.migrate", true)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("scheduler.refresh_interval_sec", 900)
	v.SetDefault("scheduler.run_on_start", true)
	v.SetDefault("rates.stale_after", "24h")
	v.SetDefault("rates.as_of_tolerance", "72h")
	v.SetDefault("rates.bases", []string{"EUR", "USD"})
	v.SetDefault("sessions.max_items", 10000)
	v.SetDefault("sessions.ttl", "12h")
	v.SetDefault("display.max_visible_badges", 3)
	v.SetDefault("display.defaults.base_currency", "EUR")
	v.SetDefault("display.defaults.fx_source", "backend")
	v.SetDefault("display.defaults.rounding_mode", "banker")
	v.SetDefault("display.defaults.timezone", "UTC")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.migrate", "DB_MIGRATE")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rates env vars
	_ = v.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "RATES_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("rates.stale_after", "RATES_STALE_AFTER")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.RatesAPI.BaseURL) == "" {
		return errors.New("rates_api.base_url is required")
	}
	if c.Rates.StaleAfter <= 0 {
		return fmt.Errorf("rates.stale_after must be positive, got %s", c.Rates.StaleAfter)
	}
	if c.Rates.AsOfTolerance < 0 {
		return fmt.Errorf("rates.as_of_tolerance must not be negative, got %s", c.Rates.AsOfTolerance)
	}
	if c.Sessions.MaxItems <= 0 {
		return fmt.Errorf("sessions.max_items must be positive, got %d", c.Sessions.MaxItems)
	}
	return nil
}

// RequestTimeout bounds a single call to the rates API.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}

func (c *AppConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Scheduler.RefreshIntervalSec) * time.Second
}
