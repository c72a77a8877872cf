package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, AuthSchemeLegacy, cfg.AuthScheme)
	assert.Equal(t, CredentialBcrypt, cfg.CredentialScheme)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, "books_storage", cfg.BooksStorage)
	assert.Equal(t, "covers", cfg.CoversStorage)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("AUTH_SCHEME", "jwt")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, AuthSchemeJWT, cfg.AuthScheme)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.CacheEnabled)
}

func TestLoad_ServerPortWins(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr())
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "driver", key: "DB_DRIVER", val: "postgres"},
		{name: "auth scheme", key: "AUTH_SCHEME", val: "basic"},
		{name: "credential scheme", key: "CREDENTIAL_SCHEME", val: "md5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		MySQLHost:      "db.internal",
		MySQLPort:      3307,
		MySQLUser:      "reader",
		MySQLPassword:  "secret",
		MySQLDatabase:  "books",
		DBQueryTimeout: 3 * time.Second,
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "reader:secret@tcp(db.internal:3307)/books")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=3s")

	cfg.MySQLDSN = "explicit"
	assert.Equal(t, "explicit", cfg.DSN())
}
