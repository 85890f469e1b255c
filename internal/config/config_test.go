package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "APP_ENV is required") || !strings.Contains(err.Error(), "JWT_SECRET is required") {
		t.Fatalf("expected all problems reported, got %v", err)
	}
}

func TestValidate_MemoryDefaults(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Store.Driver != DriverMemory || c.Session.Driver != DriverMemory {
		t.Fatalf("expected memory drivers, got %q/%q", c.Store.Driver, c.Session.Driver)
	}
	if c.Sync.Debounce != 800*time.Millisecond || c.Sync.SavingHold != 500*time.Millisecond {
		t.Fatalf("unexpected sync defaults: %+v", c.Sync)
	}
	if c.Auth.SessionTTL <= 0 || c.Sync.WriteTimeout <= 0 {
		t.Fatalf("expected ttl defaults")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "production", Port: 8080},
		Store: StoreConfig{Driver: DriverPostgres},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hotel"},
		Auth:  AuthConfig{JWTSecret: "secret", JWTIssuer: "i", JWTAudience: "a"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "local", Port: 8080},
		Store: StoreConfig{Driver: DriverPostgres},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "hotel"},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}

func TestValidate_DriverSpecificKeys(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		session string
		want    string
	}{
		{name: "redis store", store: DriverRedis, want: "REDIS_HOST is required"},
		{name: "redis sessions", session: DriverRedis, want: "REDIS_HOST is required"},
		{name: "mysql store", store: DriverMySQL, want: "MYSQL_HOST is required"},
		{name: "mongo store", store: DriverMongo, want: "MONGO_URI is required"},
		{name: "unknown store", store: "sqlite", want: "STORE_DRIVER must be one of"},
		{name: "unknown session", session: "file", want: "SESSION_DRIVER must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{
				App:     AppConfig{Env: "dev", Port: 8080},
				Store:   StoreConfig{Driver: tt.store},
				Session: SessionConfig{Driver: tt.session},
				Auth:    AuthConfig{JWTSecret: "secret"},
			}
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SYNC_DEBOUNCE", "1s")
	t.Setenv("ANALYTICS_BASELINE", "90")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.Port != 9090 || c.Sync.Debounce != time.Second || c.Analytics.BaselineScore != 90 {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_CollectsParseErrors(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "abc")
	t.Setenv("SYNC_DEBOUNCE", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected parse errors")
	}
	if !strings.Contains(err.Error(), "APP_PORT") || !strings.Contains(err.Error(), "SYNC_DEBOUNCE") {
		t.Fatalf("expected both parse errors, got %v", err)
	}
}

func TestMySQLDSN(t *testing.T) {
	c := Config{MySQL: MySQLConfig{Host: "db", Port: 3306, User: "app", Password: "pw", Name: "hotel"}}
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "app:pw@tcp(db:3306)/hotel") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestValidate_MongoDatabaseDefault(t *testing.T) {
	c := Config{
		App:   AppConfig{Env: "dev", Port: 8080},
		Store: StoreConfig{Driver: DriverMongo},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017"},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.Mongo.Database != "hotel_audit_pro" {
		t.Fatalf("expected default database, got %q", c.Mongo.Database)
	}
}
