package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the connection settings for one service database.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// RedisConfig holds the connection settings for the cache.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// JWTConfig is the signing configuration shared by every service that issues
// or verifies tokens. It is built once at startup and injected into the auth
// service; verification logic never reads ambient state.
type JWTConfig struct {
	SecretKey        string `mapstructure:"secret_key"`
	Algorithm        string `mapstructure:"algorithm"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

// ServiceConfig holds the HTTP and database settings for one service binary.
type ServiceConfig struct {
	Port     string         `mapstructure:"port"`
	Database DatabaseConfig `mapstructure:"database"`
}

// Endpoints lists the internal base URLs used for service-to-service calls.
type Endpoints struct {
	UsersURL     string `mapstructure:"users_url"`
	IncidentsURL string `mapstructure:"incidents_url"`
}

type Config struct {
	Users     ServiceConfig `mapstructure:"users"`
	Incidents ServiceConfig `mapstructure:"incidents"`
	Gateway   struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"gateway"`
	Services Endpoints   `mapstructure:"services"`
	Redis    RedisConfig `mapstructure:"redis"`
	JWT      JWTConfig   `mapstructure:"jwt"`
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load reads config.yml from the given path, applies environment overrides
// (JWT_SECRET_KEY, USERS_PORT, ...) and validates the result. A missing or
// unsupported signing configuration is an error here, at startup, so that no
// request ever reaches a misconfigured verifier.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("users.port", "8081")
	v.SetDefault("incidents.port", "8082")
	v.SetDefault("gateway.port", "8080")
	v.SetDefault("jwt.access_ttl_minutes", 30)
	v.SetDefault("jwt.refresh_ttl_days", 7)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the services cannot run without.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if c.JWT.Algorithm == "" {
		return fmt.Errorf("jwt.algorithm is required")
	}
	if !supportedAlgorithms[c.JWT.Algorithm] {
		return fmt.Errorf("jwt.algorithm %q is not supported (want HS256, HS384 or HS512)", c.JWT.Algorithm)
	}
	if c.JWT.AccessTTLMinutes <= 0 {
		return fmt.Errorf("jwt.access_ttl_minutes must be positive")
	}
	if c.JWT.RefreshTTLDays <= 0 {
		return fmt.Errorf("jwt.refresh_ttl_days must be positive")
	}
	return nil
}

// ConnString builds a lib/pq connection string for this database.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// MigrateURL builds the postgres URL used by golang-migrate.
func (d DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}
