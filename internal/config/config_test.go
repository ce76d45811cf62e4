package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfigPath, "")
	for _, k := range []string{
		"CAPILIZE_SERVER_HOST", "CAPILIZE_SERVER_PORT", "CAPILIZE_MAIL_TO",
		"CAPILIZE_DISPATCH_URL", "CAPILIZE_ANALYSIS_DELAY", "CAPILIZE_LOG_LEVEL",
		"CAPILIZE_LOG_FORMAT", "CAPILIZE_MAIL_PROVIDER", "CAPILIZE_MAIL_FROM",
		"CAPILIZE_RESEND_API_KEY", "RESEND_API_KEY", "CAPILIZE_RESEND_BASE_URL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, []string{"vendascapilize@gmail.com"}, cfg.Mail.To)
	assert.Equal(t, 3*time.Second, cfg.Funnel.AnalysisDelay)
	assert.Empty(t, cfg.Funnel.DispatchURL, "the terminal notifies in-process by default")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "capilize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
mail:
  provider: resend
  to: [sales@example.com, " ops@example.com "]
funnel:
  analysis_delay: 500ms
log:
  level: DEBUG
  format: JSON
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "resend", cfg.Mail.Provider)
	assert.Equal(t, []string{"sales@example.com", "ops@example.com"}, cfg.Mail.To)
	assert.Equal(t, 500*time.Millisecond, cfg.Funnel.AnalysisDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  host: 0.0.0.0\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CAPILIZE_SERVER_PORT", "9100")
	t.Setenv("CAPILIZE_MAIL_TO", "a@example.com, b@example.com")
	t.Setenv("CAPILIZE_DISPATCH_URL", "http://remote/api/send-diagnosis")
	t.Setenv("CAPILIZE_ANALYSIS_DELAY", "10ms")
	t.Setenv("CAPILIZE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Mail.To)
	assert.Equal(t, "http://remote/api/send-diagnosis", cfg.Funnel.DispatchURL)
	assert.Equal(t, 10*time.Millisecond, cfg.Funnel.AnalysisDelay)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvOverrideErrors(t *testing.T) {
	isolate(t)
	t.Setenv("CAPILIZE_SERVER_PORT", "eighty")
	_, err := Load("")
	assert.ErrorContains(t, err, "CAPILIZE_SERVER_PORT")

	t.Setenv("CAPILIZE_SERVER_PORT", "")
	t.Setenv("CAPILIZE_ANALYSIS_DELAY", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "CAPILIZE_ANALYSIS_DELAY")
}

func TestMailerConfig(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Mail.Provider = "resend"
	cfg.Mail.ResendAPIKey = "re_file"
	cfg.Mail.MaxAttempts = 5

	mc := cfg.MailerConfig()
	assert.Equal(t, "resend", mc.Provider)
	assert.Equal(t, "re_file", mc.Resend.APIKey)
	assert.Equal(t, 5, mc.Retry.MaxAttempts)
	require.NoError(t, mc.Validate())

	t.Setenv("CAPILIZE_RESEND_API_KEY", "re_env")
	assert.Equal(t, "re_env", cfg.MailerConfig().Resend.APIKey)
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}
