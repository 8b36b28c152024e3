// Package config builds the process configuration once at start-up.
//
// Values are layered, lowest precedence first:
//
//	defaults → config/app.json → .env → process environment → CLI flags
//
// The resulting *Config is passed explicitly to every constructor; nothing
// in the request path reads configuration globally.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv      = "local"
	defaultAppPort     = "4000"
	defaultGRPCPort    = "50051"
	defaultDBScheme    = "mongodb+srv"
	defaultDBName      = "salesdesk"
	defaultDBTimeout   = 10 * time.Second
	defaultTokenSecret = "change-me-in-production"
	defaultTokenTTL    = "24h"
	defaultReportTTL   = 30 * time.Second
	defaultRateLimit   = 200
)

// Config holds every tunable of the service.
type Config struct {
	AppEnv   string
	AppPort  string
	GRPCPort string

	DBScheme  string
	DBUser    string
	DBPass    string
	DBURL     string
	DBName    string
	MongoURL  string // full connection string; wins over the DB_* parts
	DBTimeout time.Duration

	TokenSecret string
	TokenTTL    string

	RedisAddr      string
	RedisPassword  string
	ReportCacheTTL time.Duration

	RateLimit   int
	CORSOrigins []string
	LogMongo    bool
}

// Options controls where Load looks for values.
type Options struct {
	// Files are merged in order; missing files are skipped.
	// Defaults to config/app.json and .env.
	Files []string
	// Flags, when set, are bound on top of everything else.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"env":       "APP_ENV",
	"port":      "APP_PORT",
	"grpc-port": "GRPC_PORT",
	"mongo-uri": "MONGO_URI",
	"db-name":   "DB_NAME",
}

// Load assembles a Config from files, environment and flags.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	files := opts.Files
	if files == nil {
		files = []string{"config/app.json", ".env"}
	}
	for _, path := range files {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		AppEnv:         strings.ToLower(v.GetString("APP_ENV")),
		AppPort:        v.GetString("APP_PORT"),
		GRPCPort:       v.GetString("GRPC_PORT"),
		DBScheme:       v.GetString("DB_SCHEME"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBURL:          v.GetString("DB_URL"),
		DBName:         v.GetString("DB_NAME"),
		MongoURL:       v.GetString("MONGO_URI"),
		DBTimeout:      v.GetDuration("DB_TIMEOUT"),
		TokenSecret:    v.GetString("TOKEN_SECRET"),
		TokenTTL:       v.GetString("TOKEN_TTL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		ReportCacheTTL: v.GetDuration("REPORT_CACHE_TTL"),
		RateLimit:      v.GetInt("RATE_LIMIT"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		LogMongo:       v.GetBool("LOG_MONGO"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("APP_PORT", defaultAppPort)
	v.SetDefault("GRPC_PORT", defaultGRPCPort)
	v.SetDefault("DB_SCHEME", defaultDBScheme)
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_URL", "")
	v.SetDefault("DB_NAME", defaultDBName)
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_TIMEOUT", defaultDBTimeout)
	v.SetDefault("TOKEN_SECRET", defaultTokenSecret)
	v.SetDefault("TOKEN_TTL", defaultTokenTTL)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REPORT_CACHE_TTL", defaultReportTTL)
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_MONGO", false)
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}

	v.SetConfigFile(path)
	switch {
	case strings.HasSuffix(path, ".json"):
		v.SetConfigType("json")
	default:
		v.SetConfigType("env")
	}

	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// MongoURI returns the connection string, assembled from DB_SCHEME, DB_USER,
// DB_PASS and DB_URL unless MONGO_URI is set.
func (c *Config) MongoURI() string {
	if c.MongoURL != "" {
		return c.MongoURL
	}

	scheme := c.DBScheme
	if scheme == "" {
		scheme = defaultDBScheme
	}
	if c.DBUser == "" {
		return scheme + "://" + c.DBURL
	}
	return scheme + "://" + url.UserPassword(c.DBUser, c.DBPass).String() + "@" + c.DBURL
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.MongoURL == "" && c.DBURL == "" {
		errs = append(errs, errors.New("DB_URL or MONGO_URI must be set"))
	}
	if c.TokenSecret == "" {
		errs = append(errs, errors.New("TOKEN_SECRET must be set"))
	}
	if c.IsProduction() && c.TokenSecret == defaultTokenSecret {
		errs = append(errs, errors.New("TOKEN_SECRET must be changed in production"))
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_TTL: %w", err))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
