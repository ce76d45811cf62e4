package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/capilize/capilize/internal/app"
	"github.com/capilize/capilize/internal/config"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/capilize/capilize/internal/funnel"
	"github.com/capilize/capilize/internal/logging"
	"github.com/capilize/capilize/internal/mailer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runApp loads config, builds the funnel controller, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	dispatcher, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}

	ctrl := funnel.NewController(
		funnel.NewDelayAnalyzer(cfg.Funnel.AnalysisDelay),
		dispatcher,
		funnel.WithLogger(logger),
	)

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(cmd.Context(), app.Options{
		Controller:    ctrl,
		AnalysisDelay: cfg.Funnel.AnalysisDelay,
		SkipWelcome:   skipSplash,
	})
}

// fileLogger logs to a file so the TUI owns the terminal. A logger that
// cannot be opened is replaced with a no-op one.
func fileLogger(cfg *config.Config) (zerolog.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		p, err := logging.DefaultFilePath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Logging disabled:", err)
			return zerolog.Nop(), func() {}
		}
		path = p
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return zerolog.Nop(), func() {}
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: f})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		_ = f.Close()
		return zerolog.Nop(), func() {}
	}
	return logger, func() { _ = f.Close() }
}

// stderrLogger builds the logger used by the non-interactive commands.
func stderrLogger(cfg *config.Config, out io.Writer) (zerolog.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: out})
}

// newDispatcher posts to the configured dispatch URL, or notifies the
// operator in-process when no URL is set.
func newDispatcher(cfg *config.Config, logger zerolog.Logger) (dispatch.Dispatcher, error) {
	if cfg.Funnel.DispatchURL != "" {
		return dispatch.NewClient(cfg.Funnel.DispatchURL), nil
	}
	n, err := newNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// newNotifier builds the mail-backed dispatcher from the mail section.
func newNotifier(cfg *config.Config, logger zerolog.Logger) (*dispatch.Notifier, error) {
	mc := cfg.MailerConfig()
	m, err := mailer.New(mc, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	return dispatch.NewNotifier(m, mc.From, cfg.Mail.To, logger), nil
}
