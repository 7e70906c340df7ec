package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/config"
	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/models"
	"github.com/jirani/uchunguzi/internal/workbook"
)

var exportFlagOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored survey rows to an Excel workbook",
	Long: `Export stored survey rows to an Excel workbook.

Writes the same workbook the /download endpoint serves, with duplicate
rows highlighted, without needing a running server.

Example:
  uchunguzi export --out survey_data.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errMissingDatabaseURL
		}

		if err := database.ConnectURL(cfg.DatabaseURL); err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		rows, err := models.FetchAll(database.DB)
		if err != nil {
			return err
		}

		data, err := workbook.Export(rows)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}

		if err := os.WriteFile(exportFlagOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportFlagOut, err)
		}

		logging.L().Info("exported survey rows",
			zap.Int("rows", len(rows)),
			zap.String("file", exportFlagOut))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagOut, "out", "survey_data.xlsx", "output file path")
	RootCmd.AddCommand(exportCmd)
}
