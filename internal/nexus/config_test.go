package nexus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionSection struct {
	SymmetricKey string `yaml:"symmetric_key" env:"NEXUS_TEST_SESSION_KEY"`
}

type testConfig struct {
	Host    string         `yaml:"host" env:"NEXUS_TEST_HOST" env-default:"0.0.0.0"`
	Port    int            `yaml:"port" env:"NEXUS_TEST_PORT" env-default:"8080" validate:"min=1,max=65535"`
	Timeout time.Duration  `yaml:"timeout" env:"NEXUS_TEST_TIMEOUT" env-default:"5s"`
	Session sessionSection `yaml:"session"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type staticSource struct {
	name     string
	priority int
	apply    func(cfg *testConfig)
	err      error
	calls    *[]string
}

func (s staticSource) Load(_ context.Context, target interface{}) error {
	*s.calls = append(*s.calls, s.name)
	if s.err != nil {
		return s.err
	}
	s.apply(target.(*testConfig))
	return nil
}

func (s staticSource) Name() string { return s.name }
func (s staticSource) Priority() int { return s.priority }

func TestLoader_Defaults(t *testing.T) {
	var cfg testConfig
	err := NewLoader(WithOnlyEnvironment()).Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	t.Setenv("NEXUS_TEST_PORT", "9090")
	t.Setenv("NEXUS_TEST_TIMEOUT", "750ms")

	var cfg testConfig
	require.NoError(t, NewLoader(WithOnlyEnvironment()).Load(&cfg))
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}

func TestLoader_DotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("NEXUS_TEST_HOST=atlas.local\n"), 0o600))

	// keep the process environment clean for other tests
	t.Setenv("NEXUS_TEST_HOST", "")
	require.NoError(t, os.Unsetenv("NEXUS_TEST_HOST"))

	var cfg testConfig
	err := NewLoader(WithOnlyEnvironment(), WithDotEnv(filepath.Join(dir, "missing.env"), file)).Load(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "atlas.local", cfg.Host)
}

func TestLoader_RejectsNonPointer(t *testing.T) {
	err := NewLoader(WithOnlyEnvironment()).Load(testConfig{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeInvalidType, cfgErr.Code)
}

func TestLoader_ValidationFailure(t *testing.T) {
	t.Setenv("NEXUS_TEST_PORT", "70000")

	var cfg testConfig
	err := NewLoader(WithOnlyEnvironment()).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeValidation, cfgErr.Code)
}

func TestLoader_SecurityCheckNested(t *testing.T) {
	t.Setenv("NEXUS_TEST_SESSION_KEY", "admin-admin-admin-admin-admin-ad")

	var cfg testConfig
	err := NewLoader(WithOnlyEnvironment()).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeSecurityCheck, cfgErr.Code)
	assert.Contains(t, cfgErr.Unwrap().Error(), "Session.SymmetricKey")
}

func TestLoader_CustomSourcesByPriority(t *testing.T) {
	var calls []string
	low := staticSource{name: "low", priority: 1, calls: &calls, apply: func(c *testConfig) { c.Host = "low" }}
	high := staticSource{name: "high", priority: 10, calls: &calls, apply: func(c *testConfig) { c.Host = "high" }}

	var cfg testConfig
	require.NoError(t, NewLoader(WithOnlyEnvironment(), WithSources(low, high)).Load(&cfg))

	assert.Equal(t, []string{"high", "low"}, calls)
	assert.Equal(t, "low", cfg.Host)
}

func TestLoader_SourceFailure(t *testing.T) {
	var calls []string
	broken := staticSource{name: "broken", calls: &calls, err: errors.New("boom")}

	var cfg testConfig
	err := NewLoader(WithOnlyEnvironment(), WithSources(broken)).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeSourceFailed, cfgErr.Code)
	assert.Contains(t, cfgErr.Message, "broken")
}

func TestLoader_FileMergedOverDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "atlas.yml", "host: file.local\nport: 7000\n")

	var cfg testConfig
	require.NoError(t, NewLoader(WithFileName(path)).Load(&cfg))

	assert.Equal(t, "file.local", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout, "unset keys keep their defaults")
}

func TestLoader_EnvironmentWinsOverFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "atlas.yml", "host: file.local\nport: 7000\n")
	t.Setenv("NEXUS_TEST_PORT", "9090")

	var cfg testConfig
	require.NoError(t, NewLoader(WithFileName(path)).Load(&cfg))

	assert.Equal(t, "file.local", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoader_DefaultFileWhenFlagUnset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "atlas.yml", "timeout: 2s\n")
	chdirForTest(t, dir)

	var cfg testConfig
	loader := NewLoader(WithFileFlag("nexus-test-config"), WithDefaultFileName("atlas.yml"))
	require.NoError(t, loader.Load(&cfg))

	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestLoader_NoDefaultFile(t *testing.T) {
	chdirForTest(t, t.TempDir())

	var cfg testConfig
	loader := NewLoader(WithFileFlag("nexus-test-config"), WithDefaultFileName("atlas.yml"))
	require.NoError(t, loader.Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
}

func TestLoader_MissingFile(t *testing.T) {
	var cfg testConfig
	err := NewLoader(WithFileName(filepath.Join(t.TempDir(), "absent.yml"))).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeFileNotFound, cfgErr.Code)
}

func TestLoader_FileSecurityCheck(t *testing.T) {
	path := writeFile(t, t.TempDir(), "atlas.yml", "session:\n  symmetric_key: password-password-password-pass\n")

	var cfg testConfig
	err := NewLoader(WithFileName(path)).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeSecurityCheck, cfgErr.Code)
}

func TestFileSource(t *testing.T) {
	path := writeFile(t, t.TempDir(), "override.yml", "host: source.local\n")
	source := NewFileSource(path, 5)

	assert.Equal(t, "file:"+path, source.Name())
	assert.Equal(t, 5, source.Priority())

	var cfg testConfig
	require.NoError(t, NewLoader(WithOnlyEnvironment(), WithSources(source)).Load(&cfg))
	assert.Equal(t, "source.local", cfg.Host)
}

func TestConfigError_Error(t *testing.T) {
	e := ConfigError{Code: ErrCodeValidation, Message: "bad", Field: "Port"}
	assert.Equal(t, "[CONFIG_VALIDATION_FAILED] bad (field: Port)", e.Error())

	e.Field = ""
	assert.Equal(t, "[CONFIG_VALIDATION_FAILED] bad", e.Error())
}
