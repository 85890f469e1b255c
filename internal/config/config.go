package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// Values come from the environment, optionally seeded from a .env file.
// No business logic should depend on raw environment variables.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	MySQL     MySQLConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Session   SessionConfig
	Auth      AuthConfig
	Sync      SyncConfig
	Analytics AnalyticsConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// Object store backends.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
)

type StoreConfig struct {
	Driver string
	// Prefix namespaces redis keys.
	Prefix string
}

// DBConfig is the postgres connection.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type MongoConfig struct {
	// URI is a mongodb:// connection string. Avoid logging it.
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	// Driver is memory or redis.
	Driver string
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	SessionTTL  time.Duration
}

// SyncConfig tunes write-back of the in-memory collections.
type SyncConfig struct {
	Debounce     time.Duration
	SavingHold   time.Duration
	WriteTimeout time.Duration
}

type AnalyticsConfig struct {
	// BaselineScore is reported as the weekly average when no day has data.
	BaselineScore int
}

func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	c := Config{}
	var p envParser

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	c.App.Port = p.int("APP_PORT", 8080)

	c.Store.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	c.Store.Prefix = strings.TrimSpace(os.Getenv("STORE_PREFIX"))

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	c.DB.Port = p.int("DB_PORT", 5432)
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.MySQL.Host = strings.TrimSpace(os.Getenv("MYSQL_HOST"))
	c.MySQL.Port = p.int("MYSQL_PORT", 3306)
	c.MySQL.User = strings.TrimSpace(os.Getenv("MYSQL_USER"))
	c.MySQL.Password = os.Getenv("MYSQL_PASSWORD")
	c.MySQL.Name = strings.TrimSpace(os.Getenv("MYSQL_NAME"))

	c.Mongo.URI = strings.TrimSpace(os.Getenv("MONGO_URI"))
	c.Mongo.Database = strings.TrimSpace(os.Getenv("MONGO_DATABASE"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	c.Redis.Port = p.int("REDIS_PORT", 6379)
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	c.Redis.DB = p.int("REDIS_DB", 0)

	c.Session.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("SESSION_DRIVER")))

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in Validate().
	c.Auth.SessionTTL = p.duration("SESSION_TTL")

	c.Sync.Debounce = p.duration("SYNC_DEBOUNCE")
	c.Sync.SavingHold = p.duration("SYNC_SAVING_HOLD")
	c.Sync.WriteTimeout = p.duration("SYNC_WRITE_TIMEOUT")

	c.Analytics.BaselineScore = p.int("ANALYTICS_BASELINE", 94)

	if err := joinErrors(p.errs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks c and fills in defaults for optional values.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.Store.Prefix == "" {
		c.Store.Prefix = "hotel-audit-pro"
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		errs = append(errs, c.validateRedis()...)
	case DriverPostgres:
		errs = append(errs, c.validatePostgres()...)
	case DriverMySQL:
		errs = append(errs, c.validateMySQL()...)
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required"))
		}
		if c.Mongo.Database == "" {
			c.Mongo.Database = "hotel_audit_pro"
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of memory, redis, postgres, mysql, mongo, got %q", c.Store.Driver))
	}

	if c.Session.Driver == "" {
		c.Session.Driver = DriverMemory
	}
	switch c.Session.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Store.Driver != DriverRedis {
			errs = append(errs, c.validateRedis()...)
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_DRIVER must be one of memory, redis, got %q", c.Session.Driver))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = 12 * time.Hour
	}

	if c.Sync.Debounce <= 0 {
		c.Sync.Debounce = 800 * time.Millisecond
	}
	if c.Sync.SavingHold <= 0 {
		c.Sync.SavingHold = 500 * time.Millisecond
	}
	if c.Sync.WriteTimeout <= 0 {
		c.Sync.WriteTimeout = 10 * time.Second
	}

	if c.Analytics.BaselineScore < 0 || c.Analytics.BaselineScore > 100 {
		errs = append(errs, fmt.Errorf("ANALYTICS_BASELINE must be within 0..100, got %d", c.Analytics.BaselineScore))
	}

	return joinErrors(errs)
}

func (c *Config) validateRedis() []error {
	var errs []error
	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB must be >= 0, got %d", c.Redis.DB))
	}
	return errs
}

func (c *Config) validatePostgres() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c *Config) validateMySQL() []error {
	var errs []error
	if c.MySQL.Host == "" {
		errs = append(errs, errors.New("MYSQL_HOST is required"))
	}
	if c.MySQL.Port <= 0 || c.MySQL.Port > 65535 {
		errs = append(errs, fmt.Errorf("MYSQL_PORT must be a valid port, got %d", c.MySQL.Port))
	}
	if c.MySQL.User == "" {
		errs = append(errs, errors.New("MYSQL_USER is required"))
	}
	if c.MySQL.Name == "" {
		errs = append(errs, errors.New("MYSQL_NAME is required"))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// MySQLDSN builds the go-sql-driver DSN. Avoid logging it.
func (c Config) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.MySQL.User
	mc.Passwd = c.MySQL.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.MySQL.Host, c.MySQL.Port)
	mc.DBName = c.MySQL.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// NeedsRedis reports whether any component is backed by redis.
func (c Config) NeedsRedis() bool {
	return c.Store.Driver == DriverRedis || c.Session.Driver == DriverRedis
}

// envParser reads optional env values and collects every parse failure.
type envParser struct {
	errs []error
}

func (p *envParser) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be an integer, got %q", key, v))
		return 0
	}
	return n
}

func (p *envParser) duration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a duration, got %q", key, v))
		return 0
	}
	return d
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
