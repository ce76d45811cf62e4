package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/capilize/capilize/internal/capture"
	"github.com/capilize/capilize/internal/dispatch"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <payload.json>",
	Short: "Post a diagnosis payload to the dispatch endpoint",
	Long: `Send validates a JSON payload of the form
  {"email": "...", "answers": {...}, "photo": null}
and posts it to the dispatch endpoint. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().String("url", "", "Dispatch endpoint (overrides config)")
	sendCmd.Flags().String("photo", "", "Image file to attach, replacing any photo in the payload")
	sendCmd.Flags().Bool("dry-run", false, "Validate and print the payload without sending")
}

func runSend(cmd *cobra.Command, args []string) error {
	raw, err := readPayload(cmd, args[0])
	if err != nil {
		return err
	}
	payload, err := dispatch.Validate(raw)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("photo"); path != "" {
		photo, err := capture.FromFile(path)
		if err != nil {
			return fmt.Errorf("photo: %w", err)
		}
		s := string(photo)
		payload.Photo = &s
	}

	out := cmd.OutOrStdout()
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	endpoint, _ := cmd.Flags().GetString("url")
	if endpoint == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		endpoint = cfg.Funnel.DispatchURL
	}
	if endpoint == "" {
		endpoint = dispatch.DefaultEndpoint
	}

	client := dispatch.NewClient(endpoint)
	if err := client.Dispatch(cmd.Context(), payload); err != nil {
		return err
	}
	fmt.Fprintf(out, "Diagnosis for %s sent to %s\n", payload.Email, client.Endpoint())
	return nil
}

func readPayload(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return raw, nil
}
