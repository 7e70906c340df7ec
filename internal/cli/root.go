package cli

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jirani/uchunguzi/internal/config"
	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/handlers"
	"github.com/jirani/uchunguzi/internal/logging"
	"github.com/jirani/uchunguzi/internal/realtime"
)

var Version string

// Embedded pages passed from main
var (
	DashboardTemplate []byte
	IndexTemplate     []byte
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:   "uchunguzi",
	Short: "Survey upload and visualization dashboard",
	Long: `Uchunguzi - a survey upload and visualization dashboard.

An analyst uploads an Excel workbook of survey responses, the rows are
stored in PostgreSQL, and the dashboard shows answer-rate and per-option
charts plus the free-text answers.`,
	Version: Version,
	// Default to serve command if no subcommand provided
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return serveDashboard("", "")
		}
		return cmd.Help()
	},
}

// Execute is called by main
func Execute(version string, dashboardTemplate, indexTemplate []byte) error {
	Version = version
	DashboardTemplate = dashboardTemplate
	IndexTemplate = indexTemplate

	RootCmd.Version = version

	return RootCmd.Execute()
}

// serveDashboard runs the Uchunguzi server
func serveDashboard(flagDatabaseURL, flagPort string) error {
	cfg, err := config.LoadWithOverrides(flagDatabaseURL, flagPort)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errMissingDatabaseURL
	}

	logging.L().Info("running database migrations")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logging.L().Warn("migration warning", zap.Error(err))
	}

	if err := database.ConnectURL(cfg.DatabaseURL); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logging.L().Warn("error closing database", zap.Error(err))
		}
	}()

	hub := realtime.NewHub()
	app := newApp(cfg, hub)

	logging.L().Info("uchunguzi starting",
		zap.String("port", cfg.Port),
		zap.String("version", Version))
	return app.Listen(":" + cfg.Port)
}

// newApp builds the Fiber application and its route table.
func newApp(cfg *config.Config, hub *realtime.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Uchunguzi - Survey Dashboard",
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})

	app.Use(recoverer.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Version header on all responses
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Uchunguzi-Version", Version)
		return c.Next()
	})

	// Pages
	app.Get("/", handlers.HandlePage(IndexTemplate, "Uchunguzi", Version))
	app.Get("/dashboard", handlers.HandlePage(DashboardTemplate, "Uchunguzi Dashboard", Version))

	// Upload and export
	app.Post("/upload", handlers.HandleUpload(hub))
	app.Get("/download", handlers.HandleDownload)

	// Aggregation payload and row API
	app.Get("/api/data", handlers.HandleAggregate)
	app.Post("/api/data", handlers.HandleAddRow)
	app.Put("/api/data/:id", handlers.HandleUpdateRow)
	app.Delete("/api/data/:id", handlers.HandleDeleteRow)

	// Server-rendered chart exports
	app.Get("/api/chart/q1.png", handlers.HandleQ1DistChart)
	app.Get("/api/chart/q1_counts.png", handlers.HandleQ1CountsChart)

	// Live refresh
	app.Get("/ws/live", hub.Handler())

	// Health
	app.Get("/health", handlers.HandleHealth(hub))
	app.Get("/up", handlers.HandleUp)
	app.Get("/api/version", handlers.HandleVersion(Version))

	return app
}

// requestLogger logs each request through the shared zap logger.
func requestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logging.L().Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}

