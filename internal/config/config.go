package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace_escrow/internal/usecase"
	"marketplace_escrow/pkg"

	"github.com/spf13/viper"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	EventSinkLog = "log"
	EventSinkS3  = "s3"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	AWS        AWSConfig        `mapstructure:"aws"`
	Payments   PaymentsConfig   `mapstructure:"payments"`
	Events     EventsConfig     `mapstructure:"events"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// StoreConfig selects the persistence backend. DSN is used by postgres and sqlite.
type StoreConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	DynamoEndpoint  string `mapstructure:"dynamodb_endpoint"`
	S3Endpoint      string `mapstructure:"s3_endpoint"`
}

type PaymentsConfig struct {
	AccessToken     string        `mapstructure:"access_token"`
	MockMode        bool          `mapstructure:"mock_mode"`
	PaymentMethodID string        `mapstructure:"payment_method_id"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// EventsConfig lists the sinks domain events are fanned out to.
type EventsConfig struct {
	Sinks    []string `mapstructure:"sinks"`
	S3Bucket string   `mapstructure:"s3_bucket"`
	S3Prefix string   `mapstructure:"s3_prefix"`
}

type AuthConfig struct {
	Domain        string `mapstructure:"domain"`
	Audience      string `mapstructure:"audience"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	Disabled      bool   `mapstructure:"disabled"`
}

type SettlementConfig struct {
	ClearingPeriod       time.Duration `mapstructure:"clearing_period"`
	StornoBlockThreshold float64       `mapstructure:"storno_block_threshold"`
	CaptureLease         time.Duration `mapstructure:"capture_lease"`
	RefundLease          time.Duration `mapstructure:"refund_lease"`
	TxMaxAttempts        int           `mapstructure:"tx_max_attempts"`
	TxBaseBackoff        time.Duration `mapstructure:"tx_base_backoff"`
	SweepBatchSize       int           `mapstructure:"sweep_batch_size"`
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads the optional YAML file at configPath and overlays environment
// variables. Nested keys map to upper-case env names, e.g. store.driver -> STORE_DRIVER.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env vars: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("store.driver", StoreDynamoDB)
	v.SetDefault("store.max_open_conns", 25)
	v.SetDefault("store.max_idle_conns", 5)
	v.SetDefault("store.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("store.auto_migrate", true)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key_id", "local")
	v.SetDefault("aws.secret_access_key", "local")

	v.SetDefault("payments.mock_mode", false)
	v.SetDefault("payments.payment_method_id", "account_money")
	v.SetDefault("payments.timeout", 20*time.Second)

	v.SetDefault("events.sinks", []string{EventSinkLog})
	v.SetDefault("events.s3_prefix", "events")

	v.SetDefault("auth.disabled", false)

	d := usecase.DefaultSettings()
	v.SetDefault("settlement.clearing_period", d.ClearingPeriod)
	v.SetDefault("settlement.storno_block_threshold", d.StornoBlockThreshold)
	v.SetDefault("settlement.capture_lease", d.CaptureLease)
	v.SetDefault("settlement.refund_lease", d.RefundLease)
	v.SetDefault("settlement.tx_max_attempts", d.TxMaxAttempts)
	v.SetDefault("settlement.tx_base_backoff", d.TxBaseBackoff)
	v.SetDefault("settlement.sweep_batch_size", d.SweepBatchSize)
	v.SetDefault("settlement.sweep_interval", time.Minute)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars keeps the variable names used by existing deployments.
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":               {"SERVER_PORT", "PORT"},
		"store.dsn":                 {"STORE_DSN", "DATABASE_URL"},
		"aws.region":                {"AWS_REGION"},
		"aws.access_key_id":         {"AWS_ACCESS_KEY_ID"},
		"aws.secret_access_key":     {"AWS_SECRET_ACCESS_KEY"},
		"aws.dynamodb_endpoint":     {"DYNAMODB_ENDPOINT"},
		"aws.s3_endpoint":           {"S3_ENDPOINT"},
		"payments.access_token":     {"MERCADOPAGO_ACCESS_TOKEN"},
		"events.s3_bucket":          {"EVENTS_S3_BUCKET"},
		"auth.domain":               {"AUTH0_DOMAIN"},
		"auth.audience":             {"AUTH0_AUDIENCE"},
		"auth.webhook_secret":       {"WEBHOOK_SECRET"},
		"auth.disabled":             {"AUTH_DISABLED"},
		"logger.level":              {"LOG_LEVEL"},
		"logger.format":             {"LOG_FORMAT"},
		"settlement.sweep_interval": {"SWEEP_INTERVAL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, errors.New("server.port must be positive"))
	}
	switch c.Store.Driver {
	case StoreDynamoDB:
	case StorePostgres, StoreSQLite:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for driver %s", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}
	for _, sink := range c.Events.Sinks {
		switch sink {
		case EventSinkLog:
		case EventSinkS3:
			if c.Events.S3Bucket == "" {
				errs = append(errs, errors.New("events.s3_bucket is required for the s3 sink"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown event sink %q", sink))
		}
	}
	if !c.Auth.Disabled {
		if c.Auth.Domain == "" || c.Auth.Audience == "" {
			errs = append(errs, errors.New("auth.domain and auth.audience are required"))
		}
		if c.Auth.WebhookSecret == "" {
			errs = append(errs, errors.New("auth.webhook_secret is required"))
		}
	}
	if c.Settlement.StornoBlockThreshold < 0 || c.Settlement.StornoBlockThreshold > 100 {
		errs = append(errs, errors.New("settlement.storno_block_threshold must be between 0 and 100"))
	}
	return errors.Join(errs...)
}

// Settings returns the use-case tuning derived from the settlement section.
func (c SettlementConfig) Settings() usecase.Settings {
	return usecase.Settings{
		ClearingPeriod:       c.ClearingPeriod,
		StornoBlockThreshold: c.StornoBlockThreshold,
		CaptureLease:         c.CaptureLease,
		RefundLease:          c.RefundLease,
		TxMaxAttempts:        c.TxMaxAttempts,
		TxBaseBackoff:        c.TxBaseBackoff,
		SweepBatchSize:       c.SweepBatchSize,
	}
}

func (c LoggerConfig) Options() pkg.LoggerConfig {
	return pkg.LoggerConfig{Level: c.Level, OutputPath: c.OutputPath, Format: c.Format}
}
