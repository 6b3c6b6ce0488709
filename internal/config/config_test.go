package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MOVIELIB_AUTH_SECRETKEY", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "/api/v1", cfg.Server.PathPrefix)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/movies.db", cfg.Database.DSN)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 1440, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "posters", cfg.Storage.KeyPrefix)
	assert.Equal(t, 15, cfg.Storage.PresignTTLMinutes)
	assert.Empty(t, cfg.Storage.Bucket)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MOVIELIB_AUTH_SECRETKEY", "s3cr3t")
	t.Setenv("MOVIELIB_AUTH_ALGORITHM", "HS512")
	t.Setenv("MOVIELIB_AUTH_TOKENTTLMINUTES", "30")
	t.Setenv("MOVIELIB_DATABASE_DRIVER", "pgx")
	t.Setenv("MOVIELIB_DATABASE_DSN", "postgres://movies@localhost/movies")
	t.Setenv("MOVIELIB_LOG_FORMAT", "json")
	t.Setenv("MOVIELIB_STORAGE_BUCKET", "movie-posters")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "HS512", cfg.Auth.Algorithm)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://movies@localhost/movies", cfg.Database.DSN)
	assert.Equal(t, "movie-posters", cfg.Storage.Bucket)

	_, isJSON := cfg.Logger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("MOVIELIB_AUTH_SECRETKEY", "")
	_, err := Load()
	assert.ErrorContains(t, err, "auth.secretkey")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Auth.SecretKey = "k"
		c.Auth.Algorithm = "HS256"
		c.Auth.TokenTTLMinutes = 10
		c.Auth.BcryptCost = 10
		c.Database.Driver = "sqlite"
		c.Database.DSN = "x.db"
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.Server.PathPrefix = "/api/v1"
		return c
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"algorithm":  func(c *Config) { c.Auth.Algorithm = "RS256" },
		"ttl":        func(c *Config) { c.Auth.TokenTTLMinutes = 0 },
		"cost":       func(c *Config) { c.Auth.BcryptCost = 3 },
		"driver":     func(c *Config) { c.Database.Driver = "mysql" },
		"dsn":        func(c *Config) { c.Database.DSN = " " },
		"level":      func(c *Config) { c.Log.Level = "loud" },
		"format":     func(c *Config) { c.Log.Format = "xml" },
		"prefix":     func(c *Config) { c.Server.PathPrefix = "api" },
		"presignttl": func(c *Config) { c.Storage.Bucket = "b"; c.Storage.PresignTTLMinutes = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLogger_Level(t *testing.T) {
	var c Config
	c.Log.Level = "debug"
	c.Log.Format = "text"
	logger := c.Logger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}
