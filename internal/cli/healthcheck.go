package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jirani/uchunguzi/internal/config"
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if the server is healthy",
	Long:  "Performs an HTTP request to the /up endpoint to verify the server and database are operational",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := "8080" // Default port
		if cfg, err := config.Load(); err == nil && cfg.Port != "" {
			port = cfg.Port
		}

		url := fmt.Sprintf("http://localhost:%s/up", port)

		client := &http.Client{
			Timeout: 2 * time.Second,
		}

		resp, err := client.Get(url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			return fmt.Errorf("healthcheck failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: status %d\n", resp.StatusCode)
			return fmt.Errorf("healthcheck failed: status %d", resp.StatusCode)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthcheckCmd)
}
