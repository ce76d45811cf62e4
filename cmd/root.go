package cmd

import (
	"context"

	"github.com/capilize/capilize/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "capilize",
	Short: "Hair diagnosis funnel",
	Long:  "Capilize walks a visitor through a short hair questionnaire, shows a diagnosis and sends it to the sales inbox.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides CAPILIZE_CONFIG env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome splash")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config (highest priority), then
// CAPILIZE_CONFIG, then the per-user file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	p, _ := cmd.Flags().GetString("config")
	return config.Load(p)
}
