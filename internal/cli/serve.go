package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errMissingDatabaseURL = errors.New("no database configured: set DATABASE_URL or database_url in uchunguzi.toml")

var (
	serveFlagDatabaseURL string
	serveFlagPort        string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Uchunguzi server",
	Long: `Start the Uchunguzi server.

Runs pending database migrations, connects to PostgreSQL and serves the
dashboard, upload endpoint and aggregation API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveDashboard(serveFlagDatabaseURL, serveFlagPort)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagDatabaseURL, "database-url", "", "PostgreSQL connection string (overrides config file and env)")
	serveCmd.Flags().StringVar(&serveFlagPort, "port", "", "port to listen on (overrides config file and env)")
	RootCmd.AddCommand(serveCmd)
}
