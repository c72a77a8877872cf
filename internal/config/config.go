package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"
)

// Supported values for the enum-like settings.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	AuthSchemeLegacy = "legacy"
	AuthSchemeJWT    = "jwt"

	CredentialBcrypt = "bcrypt"
	CredentialPlain  = "plain"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT"`
	Port            string        `env:"PORT" envDefault:"8080"`
	BodyLimit       string        `env:"BODY_LIMIT" envDefault:"16M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DBDriver          string        `env:"DB_DRIVER" envDefault:"mysql"`
	MySQLDSN          string        `env:"MYSQL_DSN"`
	MySQLHost         string        `env:"MYSQLHOST" envDefault:"localhost"`
	MySQLPort         int           `env:"MYSQLPORT" envDefault:"3306"`
	MySQLUser         string        `env:"MYSQLUSER" envDefault:"root"`
	MySQLPassword     string        `env:"MYSQLPASSWORD"`
	MySQLDatabase     string        `env:"MYSQLDATABASE" envDefault:"readscape"`
	SQLitePath        string        `env:"SQLITE_PATH" envDefault:"readscape.db"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBQueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	ResetDB           bool          `env:"RESET_DB"`

	CacheEnabled bool   `env:"CACHE_ENABLED" envDefault:"true"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass    string `env:"REDIS_PASSWORD"`

	AuthScheme       string        `env:"AUTH_SCHEME" envDefault:"legacy"`
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"24h"`
	CredentialScheme string        `env:"CREDENTIAL_SCHEME" envDefault:"bcrypt"`

	BooksStorage  string `env:"BOOKS_STORAGE" envDefault:"books_storage"`
	CoversStorage string `env:"COVERS_STORAGE" envDefault:"covers"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unsupported enum values.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.AuthScheme {
	case AuthSchemeLegacy, AuthSchemeJWT:
	default:
		return fmt.Errorf("config: unsupported AUTH_SCHEME %q", c.AuthScheme)
	}
	switch c.CredentialScheme {
	case CredentialBcrypt, CredentialPlain:
	default:
		return fmt.Errorf("config: unsupported CREDENTIAL_SCHEME %q", c.CredentialScheme)
	}
	if c.AuthScheme == AuthSchemeJWT && c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required when AUTH_SCHEME=jwt")
	}
	return nil
}

// Addr returns the listen address. SERVER_PORT wins over PORT.
func (c *Config) Addr() string {
	if c.ServerPort != "" {
		return ":" + c.ServerPort
	}
	return ":" + c.Port
}

// DSN returns the MySQL DSN, building one from the discrete MYSQL* variables
// when MYSQL_DSN is not set.
func (c *Config) DSN() string {
	if c.MySQLDSN != "" {
		return c.MySQLDSN
	}
	mc := mysql.NewConfig()
	mc.User = c.MySQLUser
	mc.Passwd = c.MySQLPassword
	mc.Net = "tcp"
	mc.Addr = c.MySQLHost + ":" + strconv.Itoa(c.MySQLPort)
	mc.DBName = c.MySQLDatabase
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	mc.Timeout = c.DBQueryTimeout
	mc.ReadTimeout = c.DBQueryTimeout
	mc.WriteTimeout = c.DBQueryTimeout
	return mc.FormatDSN()
}
