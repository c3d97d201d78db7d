package env

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Dir      string        `env:"TEST_DIR" default:"/var/lib/taskmind"`
	Retries  int           `env:"TEST_RETRIES" default:"3"`
	Enabled  bool          `env:"TEST_ENABLED" default:"true"`
	Interval time.Duration `env:"TEST_INTERVAL" default:"1m"`
	NoDef    string        `env:"TEST_NO_DEF"`
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func clearTestEnv(t *testing.T) {
	unsetEnv(t, "TEST_DIR", "TEST_RETRIES", "TEST_ENABLED", "TEST_INTERVAL", "TEST_NO_DEF",
		"STORAGE_DSN", "STORAGE_TYPE", "APP_NAME")
}

func TestParse(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_DIR", "/tmp/tasks")
	t.Setenv("TEST_RETRIES", "9")
	t.Setenv("TEST_ENABLED", "false")
	t.Setenv("TEST_INTERVAL", "90s")
	t.Setenv("TEST_NO_DEF", "foo")

	var cfg TestConfig
	err := Parse(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tasks", cfg.Dir)
	assert.Equal(t, 9, cfg.Retries)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Interval)
	assert.Equal(t, "foo", cfg.NoDef)
}

func TestParse_Defaults(t *testing.T) {
	clearTestEnv(t)

	var cfg TestConfig
	err := Parse(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/taskmind", cfg.Dir)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Empty(t, cfg.NoDef)
}

func TestParse_EmptyStringRespected(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_DIR", "") // Empty string for string field

	var cfg TestConfig
	err := Parse(&cfg)
	require.NoError(t, err)

	// Empty strings should be respected for string fields (not use defaults)
	assert.Equal(t, "", cfg.Dir)
	// Retries not set, so uses default
	assert.Equal(t, 3, cfg.Retries)
}

func TestParse_EmptyStringIntError(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_RETRIES", "") // Empty string for int field

	var cfg TestConfig
	err := Parse(&cfg)
	// Empty string for int field should error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")

	var invalid ErrInvalidValue
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "TEST_RETRIES", invalid.EnvVar)
	assert.Equal(t, "Retries", invalid.Field)
}

func TestParse_InvalidDuration(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_INTERVAL", "soon")

	var cfg TestConfig
	err := Parse(&cfg)

	var invalid ErrInvalidValue
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "TEST_INTERVAL", invalid.EnvVar)
}

func TestParse_EmbeddedStruct(t *testing.T) {
	type BaseConfig struct {
		StorageDSN  string `env:"STORAGE_DSN"`
		StorageType string `env:"STORAGE_TYPE" default:"sqlite"`
	}

	type AppConfig struct {
		BaseConfig
		AppName string `env:"APP_NAME" default:"taskmind"`
	}

	t.Run("parses embedded struct fields", func(t *testing.T) {
		clearTestEnv(t)
		t.Setenv("STORAGE_DSN", "postgres://localhost/db")
		t.Setenv("APP_NAME", "testapp")

		var cfg AppConfig
		err := Parse(&cfg)
		require.NoError(t, err)

		assert.Equal(t, "postgres://localhost/db", cfg.StorageDSN)
		assert.Equal(t, "sqlite", cfg.StorageType) // Uses default
		assert.Equal(t, "testapp", cfg.AppName)
	})

	t.Run("empty string in embedded struct is respected", func(t *testing.T) {
		clearTestEnv(t)
		t.Setenv("STORAGE_DSN", "postgres://localhost/db")
		t.Setenv("STORAGE_TYPE", "") // Empty string

		var cfg AppConfig
		err := Parse(&cfg)
		require.NoError(t, err)

		assert.Equal(t, "", cfg.StorageType) // Empty string is respected, not replaced with default
	})
}

func TestLoad_KeepsValuesForUnsetVariables(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_RETRIES", "5")

	cfg := TestConfig{Dir: "/from/file", Retries: 1}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "/from/file", cfg.Dir, "unset variable leaves the prior value")
	assert.Equal(t, 5, cfg.Retries, "set variable overrides the prior value")
	assert.False(t, cfg.Enabled, "Load alone does not apply defaults")
}

func TestApplyDefaults(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_DIR", "/ignored")

	var cfg TestConfig
	require.NoError(t, ApplyDefaults(&cfg))

	assert.Equal(t, "/var/lib/taskmind", cfg.Dir, "environment is not consulted")
	assert.Equal(t, 3, cfg.Retries)
}

type validatedConfig struct {
	Nested validatedSection
}

type validatedSection struct {
	Mode string `env:"TEST_MODE" default:"bad"`
}

func (s *validatedSection) Validate() error {
	if s.Mode != "good" {
		return errors.New("mode must be good")
	}
	return nil
}

func TestLoad_ValidatesNestedStructs(t *testing.T) {
	unsetEnv(t, "TEST_MODE")

	var cfg validatedConfig
	require.NoError(t, ApplyDefaults(&cfg), "defaults are not validated")
	assert.EqualError(t, Load(&cfg), "mode must be good")

	t.Setenv("TEST_MODE", "good")
	assert.NoError(t, Load(&cfg))
}

func TestLoad_RejectsNonStructPointer(t *testing.T) {
	var cfg TestConfig
	err := Load(cfg)

	var notPtr ErrNotStructPointer
	require.True(t, errors.As(err, &notPtr))
	assert.Equal(t, "env.TestConfig", notPtr.Type)
}

func TestLoad_UnsupportedType(t *testing.T) {
	type cfg struct {
		Ratio float64 `env:"TEST_RATIO"`
	}
	t.Setenv("TEST_RATIO", "0.5")

	var c cfg
	err := Load(&c)

	var unsupported ErrUnsupportedType
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "float64", unsupported.Kind)
}
