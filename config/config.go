package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the history/account/alert store.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`    // postgres, memory
	SeedFile string `mapstructure:"seed_file"` // memory driver only
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig configures the alert fan-out topic.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	AlertTopic   string        `mapstructure:"alert_topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// RateLimitConfig is a fixed window per authenticated caller.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// RiskConfig holds evaluator thresholds. Monetary values are decimal strings.
type RiskConfig struct {
	DailyLimit          string        `mapstructure:"daily_limit"`
	DailyWindow         time.Duration `mapstructure:"daily_window"`
	StructuringGap      time.Duration `mapstructure:"structuring_gap"`
	SanctionedCountries []string      `mapstructure:"sanctioned_countries"`
	RoundAmountUnit     string        `mapstructure:"round_amount_unit"`
	RoundAmountMin      string        `mapstructure:"round_amount_min"`
	RoundAmountCount    int           `mapstructure:"round_amount_count"`
	UnverifiedLimit     string        `mapstructure:"unverified_limit"`

	FraudBlockScore   int           `mapstructure:"fraud_block_score"`
	RuleTriggerScore  int           `mapstructure:"rule_trigger_score"`
	VelocityWindow    time.Duration `mapstructure:"velocity_window"`
	VelocityPoints    int           `mapstructure:"velocity_points"`
	DeviationWindow   time.Duration `mapstructure:"deviation_window"`
	DeviationPerPoint string        `mapstructure:"deviation_per_point"`
	DeviationCap      int           `mapstructure:"deviation_cap"`

	NewAccountAge   time.Duration `mapstructure:"new_account_age"`
	FailedWindow    time.Duration `mapstructure:"failed_window"`
	FailedThreshold int64         `mapstructure:"failed_threshold"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

// AlertsConfig controls alert deduplication. A zero window disables it.
type AlertsConfig struct {
	DedupWindow time.Duration `mapstructure:"dedup_window"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TRE_ (Transfer Risk Engine).
// Nested keys use underscore: TRE_DATABASE_HOST, TRE_RISK_DAILY_LIMIT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.seed_file", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "transfers")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.alert_topic", "risk.alerts")
	v.SetDefault("kafka.write_timeout", "5s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "transfer-risk-engine")
	v.SetDefault("rate_limit.requests", 600)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("risk.daily_limit", "10000")
	v.SetDefault("risk.daily_window", "24h")
	v.SetDefault("risk.structuring_gap", "5m")
	v.SetDefault("risk.sanctioned_countries", []string{"KP", "IR", "CU", "SY"})
	v.SetDefault("risk.round_amount_unit", "1000")
	v.SetDefault("risk.round_amount_min", "10000")
	v.SetDefault("risk.round_amount_count", 3)
	v.SetDefault("risk.unverified_limit", "1000")
	v.SetDefault("risk.fraud_block_score", 70)
	v.SetDefault("risk.rule_trigger_score", 50)
	v.SetDefault("risk.velocity_window", "1h")
	v.SetDefault("risk.velocity_points", 10)
	v.SetDefault("risk.deviation_window", "168h")
	v.SetDefault("risk.deviation_per_point", "100")
	v.SetDefault("risk.deviation_cap", 100)
	v.SetDefault("risk.new_account_age", "168h")
	v.SetDefault("risk.failed_window", "720h")
	v.SetDefault("risk.failed_threshold", 5)
	v.SetDefault("risk.query_timeout", "2s")
	v.SetDefault("alerts.dedup_window", "10m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TRE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
