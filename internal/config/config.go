package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	OperationTimeout time.Duration
	Mongo            Mongo
	Auth             Auth
	RateLimit        RateLimit
	Pprof            Pprof
	Kafka            Kafka
	CORS             CORS
}

// Mongo describes how to reach the document store.
type Mongo struct {
	URI  string // full connection string; wins over User/Pass/Host
	User string
	Pass string
	Host string
	Name string
}

// ConnectionString returns URI if set, otherwise an SRV connection string built from the credentials.
func (m Mongo) ConnectionString() string {
	if m.URI != "" {
		return m.URI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(m.User, m.Pass),
		Host:     m.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}

// Auth stores token signing settings.
type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

// RateLimit stores per-client token bucket settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the optional profiling server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Kafka stores assignment event settings. Empty Brokers disables publishing and the worker.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled reports whether enough settings are present to talk to Kafka.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && strings.TrimSpace(k.Topic) != ""
}

// CORS stores allowed origins for browser clients.
type CORS struct {
	AllowedOrigins []string
}

var (
	errNoSecret      = errors.New("ACCESS_TOKEN_SECRET is required")
	errNoCredentials = errors.New("MONGO_URI or DB_USER and DB_PASS are required")
)

// Load reads configuration in order: .env (if present) → environment → command-line flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit command-line arguments.
func LoadArgs(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             defaultPort,
		OperationTimeout: defaultOperationTimeout,
		Mongo:            defaultMongo,
		Auth:             Auth{TokenTTL: defaultTokenTTL},
		RateLimit:        defaultRateLimit,
		Pprof:            defaultPprof,
		Kafka:            defaultKafka,
		CORS:             CORS{AllowedOrigins: []string{defaultCORSOrigin}},
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envInt("PORT", &cfg.Port))
	collect(envDuration("OPERATION_TIMEOUT", &cfg.OperationTimeout))

	envString("MONGO_URI", &cfg.Mongo.URI)
	envString("DB_USER", &cfg.Mongo.User)
	envString("DB_PASS", &cfg.Mongo.Pass)
	envString("DB_HOST", &cfg.Mongo.Host)
	envString("DB_NAME", &cfg.Mongo.Name)

	envString("ACCESS_TOKEN_SECRET", &cfg.Auth.Secret)
	collect(envDuration("ACCESS_TOKEN_TTL", &cfg.Auth.TokenTTL))

	collect(envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled))
	collect(envFloat("RATE_LIMIT_RATE", &cfg.RateLimit.Rate))
	collect(envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst))
	collect(envDuration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL))
	collect(envInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets))

	collect(envBool("PPROF_ENABLED", &cfg.Pprof.Enabled))
	envString("PPROF_ADDR", &cfg.Pprof.Addr)
	envString("PPROF_USER", &cfg.Pprof.User)
	envString("PPROF_PASS", &cfg.Pprof.Pass)

	envList("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	envString("KAFKA_ASSIGNMENTS_TOPIC", &cfg.Kafka.Topic)
	envString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)

	envList("CORS_ALLOWED_ORIGINS", &cfg.CORS.AllowedOrigins)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	fs := pflag.NewFlagSet("service-parcel", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Mongo.Name, "db-name", cfg.Mongo.Name, "MongoDB database name")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errNoSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid ACCESS_TOKEN_TTL: %s", c.Auth.TokenTTL)
	}
	if c.Mongo.URI == "" && (c.Mongo.User == "" || c.Mongo.Pass == "") {
		return errNoCredentials
	}
	if strings.TrimSpace(c.Mongo.Name) == "" {
		return errors.New("DB_NAME must not be empty")
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid OPERATION_TIMEOUT: %s", c.OperationTimeout)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func envList(key string, dst *[]string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}
