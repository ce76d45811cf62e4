package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capilize/capilize/internal/config"
	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/quiz"
	"github.com/capilize/capilize/internal/server"
)

const samplePayload = `{
  "email": "user@example.com",
  "answers": {
    "oilScalp": "normal",
    "chemicalFrequency": "rare",
    "strandCondition": "dry-damaged",
    "difficulties": ["dryness"]
  },
  "photo": null
}`

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("CAPILIZE_CONFIG", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default; cobra keeps
// parsed values on package-level commands between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writePayload(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "capilize (devel)\n", out)
}

func TestAnswersFromFlags(t *testing.T) {
	a, err := answersFromFlags(
		[quiz.NumCoreQuestions]string{"normal", "", "dry-damaged"},
		[]string{"dryness", "frizz", "dryness"},
	)
	require.NoError(t, err)

	assert.Equal(t, quiz.OilNormal, a.OilScalp)
	assert.False(t, a.IsAnswered(1))
	assert.Equal(t, quiz.StrandDryDamaged, a.StrandCondition)
	assert.Equal(t, 2, a.DifficultyCount())
}

func TestAnswersFromFlags_RejectsUnknownValues(t *testing.T) {
	_, err := answersFromFlags([quiz.NumCoreQuestions]string{"greasy", "", ""}, nil)
	assert.Error(t, err)

	_, err = answersFromFlags([quiz.NumCoreQuestions]string{}, []string{"baldness"})
	assert.Error(t, err)
}

func TestDiagnoseJSON(t *testing.T) {
	out, err := execute(t, "diagnose",
		"--strand", "mixed-roots-tips",
		"--difficulty", "split-ends",
		"--difficulty", "frizz",
		"--json")
	require.NoError(t, err)

	var got diagnosisOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, diagnosis.KindBreakage, got.Kind)
	assert.Equal(t, diagnosis.For(diagnosis.KindBreakage).Headline, got.Headline)
}

func TestDiagnoseText(t *testing.T) {
	out, err := execute(t, "diagnose", "--strand", "healthy")
	require.NoError(t, err)
	assert.Contains(t, out, diagnosis.For(diagnosis.KindMaintenance).Headline)
	assert.Contains(t, out, "(rule: maintenance)")
}

func TestSendPostsValidatedPayload(t *testing.T) {
	var got []dispatch.Payload
	d := dispatch.DispatcherFunc(func(_ context.Context, p dispatch.Payload) error {
		got = append(got, p)
		return nil
	})
	ts := httptest.NewServer(server.New(server.DefaultSettings(), d).Handler())
	defer ts.Close()

	out, err := execute(t, "send", "--url", ts.URL+server.DispatchPath, writePayload(t, samplePayload))
	require.NoError(t, err)
	assert.Contains(t, out, "user@example.com")

	require.Len(t, got, 1)
	assert.Equal(t, "dry-damaged", got[0].Answers.StrandCondition)
	assert.Equal(t, []string{"dryness"}, got[0].Answers.Difficulties)
	assert.Nil(t, got[0].Photo)
}

func TestSendDryRunDoesNotPost(t *testing.T) {
	out, err := execute(t, "send", "--dry-run", "--url", "http://127.0.0.1:1/never", writePayload(t, samplePayload))
	require.NoError(t, err)

	var p dispatch.Payload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "user@example.com", p.Email)
}

func TestSendRejectsInvalidPayload(t *testing.T) {
	_, err := execute(t, "send", "--dry-run", writePayload(t, `{"email": ""}`))
	var invalid *dispatch.ErrInvalidPayload
	assert.ErrorAs(t, err, &invalid)
}

func TestSendReportsDispatchFailure(t *testing.T) {
	d := dispatch.DispatcherFunc(func(context.Context, dispatch.Payload) error {
		return assert.AnError
	})
	ts := httptest.NewServer(server.New(server.DefaultSettings(), d).Handler())
	defer ts.Close()

	_, err := execute(t, "send", "--url", ts.URL+server.DispatchPath, writePayload(t, samplePayload))
	var failed *dispatch.ErrDispatchFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 500, failed.StatusCode)
}

func TestNewDispatcherDefaultsToInProcessNotifier(t *testing.T) {
	cfg := config.Default()
	d, err := newDispatcher(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &dispatch.Notifier{}, d)

	cfg.Funnel.DispatchURL = "http://127.0.0.1:8787" + server.DispatchPath
	d, err = newDispatcher(cfg, zerolog.Nop())
	require.NoError(t, err)
	client, ok := d.(*dispatch.Client)
	require.True(t, ok)
	assert.Equal(t, cfg.Funnel.DispatchURL, client.Endpoint())
}

func TestConfigInitWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capilize", "config.yaml")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dispatch_url")

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mail:\n  resend_api_key: re_secret\n"), 0o644))

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "re_secret")
	assert.Contains(t, out, "# loaded from "+path)
}
