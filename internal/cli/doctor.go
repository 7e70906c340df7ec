package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/jirani/uchunguzi/internal/config"
	"github.com/jirani/uchunguzi/internal/database"
	"github.com/jirani/uchunguzi/internal/models"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on Uchunguzi installation",
	Long: `Run health checks on Uchunguzi installation.

Checks performed:
  - Database connection
  - PostgreSQL version ≥14
  - Database migrations completed
  - Survey table indexes exist
  - Stored row count

Example:
  uchunguzi doctor
  uchunguzi doctor --json`,
	RunE: runDoctor,
}

type CheckResult struct {
	Name       string `json:"name"`
	Pass       bool   `json:"pass"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

var requiredIndexes = []string{
	"idx_survey_responses_identity",
}

// latestMigration is bumped whenever a migration file is added.
const latestMigration = uint(1)

func checkDatabaseConnection(db *sql.DB) CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return CheckResult{
			Name:       "Database Connection",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Verify DATABASE_URL and ensure PostgreSQL is running",
		}
	}
	return CheckResult{Name: "Database Connection", Pass: true}
}

func checkPostgreSQLVersion(db *sql.DB) CheckResult {
	var version string
	err := db.QueryRow("SHOW server_version").Scan(&version)
	if err != nil {
		return CheckResult{Name: "PostgreSQL Version", Pass: false, Error: err.Error()}
	}

	// Parse version (e.g., "16.4 (Debian 16.4-1)")
	parts := strings.Split(version, " ")
	versionNum := strings.Split(parts[0], ".")
	major, _ := strconv.Atoi(versionNum[0])

	if major < 14 {
		return CheckResult{
			Name:       "PostgreSQL Version",
			Pass:       false,
			Error:      fmt.Sprintf("Version %s found, need ≥14", parts[0]),
			Suggestion: "Upgrade PostgreSQL to version 14 or higher",
		}
	}
	return CheckResult{Name: "PostgreSQL Version", Pass: true, Details: parts[0]}
}

func checkMigrations(cfg *config.Config) CheckResult {
	version, dirty, err := database.GetMigrationVersion(cfg.DatabaseURL)
	if err != nil {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Run migrations with: uchunguzi serve",
		}
	}

	if version != latestMigration {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      fmt.Sprintf("Migration version %d, expected %d", version, latestMigration),
			Suggestion: "Run migrations with: uchunguzi serve",
		}
	}

	if dirty {
		return CheckResult{
			Name:       "Database Migrations",
			Pass:       false,
			Error:      "Migration state is dirty",
			Suggestion: "Fix dirty migration state, may need manual intervention",
		}
	}

	return CheckResult{Name: "Database Migrations", Pass: true, Details: fmt.Sprintf("v%d", version)}
}

func checkIndexes(db *sql.DB) CheckResult {
	query := `
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = 'public' AND indexname = ANY($1)
	`

	rows, err := db.Query(query, pq.Array(requiredIndexes))
	if err != nil {
		return CheckResult{Name: "Survey Table Indexes", Pass: false, Error: err.Error()}
	}
	defer func() { _ = rows.Close() }()

	foundIndexes := make(map[string]bool)
	for rows.Next() {
		var name string
		_ = rows.Scan(&name)
		foundIndexes[name] = true
	}

	var missing []string
	for _, idx := range requiredIndexes {
		if !foundIndexes[idx] {
			missing = append(missing, idx)
		}
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:       "Survey Table Indexes",
			Pass:       false,
			Error:      fmt.Sprintf("Missing indexes: %s", strings.Join(missing, ", ")),
			Suggestion: "Run migrations to create missing indexes",
		}
	}

	return CheckResult{
		Name:    "Survey Table Indexes",
		Pass:    true,
		Details: fmt.Sprintf("%d/%d indexes found", len(requiredIndexes), len(requiredIndexes)),
	}
}

func checkRowCount(db *sql.DB) CheckResult {
	n, err := models.Count(db)
	if err != nil {
		return CheckResult{
			Name:       "Survey Rows",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Run migrations to create the survey_responses table",
		}
	}
	return CheckResult{
		Name:    "Survey Rows",
		Pass:    true,
		Details: fmt.Sprintf("%d rows stored", n),
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("✗ Configuration Error: %v\n", err)
		return err
	}
	if cfg.DatabaseURL == "" {
		fmt.Printf("✗ Configuration Error: %v\n", errMissingDatabaseURL)
		return errMissingDatabaseURL
	}

	results := []CheckResult{}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		results = append(results, CheckResult{
			Name:       "Database Connection",
			Pass:       false,
			Error:      err.Error(),
			Suggestion: "Verify DATABASE_URL is valid",
		})
	} else {
		defer func() { _ = db.Close() }()

		results = append(results, checkDatabaseConnection(db))
		results = append(results, checkPostgreSQLVersion(db))
		results = append(results, checkMigrations(cfg))
		results = append(results, checkIndexes(db))
		results = append(results, checkRowCount(db))
	}

	if jsonOutput {
		outputDoctorJSON(results)
	} else {
		outputDoctorHuman(results)
	}

	allPassed := true
	for _, r := range results {
		if !r.Pass {
			allPassed = false
			break
		}
	}

	if !allPassed {
		os.Exit(1)
	}

	return nil
}

func outputDoctorHuman(results []CheckResult) {
	fmt.Println("\n🏥 Uchunguzi Health Check")

	for _, r := range results {
		icon := "✓"
		if !r.Pass {
			icon = "✗"
		}

		fmt.Printf("%s %s", icon, r.Name)
		if r.Details != "" {
			fmt.Printf(" (%s)", r.Details)
		}
		fmt.Println()

		if !r.Pass {
			if r.Error != "" {
				fmt.Printf("  Error: %s\n", r.Error)
			}
			if r.Suggestion != "" {
				fmt.Printf("  💡 %s\n", r.Suggestion)
			}
		}
	}

	passed := 0
	for _, r := range results {
		if r.Pass {
			passed++
		}
	}

	fmt.Printf("\n%d/%d checks passed\n\n", passed, len(results))
}

func outputDoctorJSON(results []CheckResult) {
	data, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(data))
}

func init() {
	doctorCmd.Flags().Bool("json", false, "Output results as JSON")
	RootCmd.AddCommand(doctorCmd)
}
