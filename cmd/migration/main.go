package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/pkg/db/migrations"
	"github.com/naekun/naebot/pkg/repositories/stats"

	_ "github.com/mattn/go-sqlite3"
)

var log = logging.Default

func main() {
	// Define command-line flags
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Migrate and status options
	dbPath := migrateCmd.String("db", "data/naebot.db", "Path to SQLite database")
	statusPath := statusCmd.String("db", "data/naebot.db", "Path to SQLite database")

	// Import options
	from := importCmd.String("from", "data/stats.json", "JSON stats file to read")
	to := importCmd.String("to", stats.BackendSQLite, "Target backend: sqlite or postgres")
	target := importCmd.String("target", "data/naebot.db", "SQLite path or Postgres URL to write to")

	// Show usage if no arguments provided
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Parse command
	switch os.Args[1] {
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		applyMigrations(*dbPath)

	case "status":
		statusCmd.Parse(os.Args[2:])
		showStatus(*statusPath)

	case "import":
		importCmd.Parse(os.Args[2:])
		importStats(*from, *to, *target)

	case "help":
		printUsage()

	default:
		fmt.Printf("Error: Unknown command '%s'\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run cmd/migration/main.go migrate [-db PATH]   - Apply pending SQLite migrations")
	fmt.Println("  go run cmd/migration/main.go status [-db PATH]    - List applied and pending migrations")
	fmt.Println("  go run cmd/migration/main.go import [flags]       - Copy a JSON stats file into sqlite or postgres")
	fmt.Println("  go run cmd/migration/main.go help                 - Show this help")
	fmt.Println("\nExamples:")
	fmt.Println("  go run cmd/migration/main.go migrate -db data/naebot.db")
	fmt.Println("  go run cmd/migration/main.go import -from stats.json -to postgres -target postgres://localhost/naebot")
}

func openDB(dbPath string) *sql.DB {
	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Error("Error creating database directory: %v", err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Error("Error opening database: %v", err)
		os.Exit(1)
	}
	return db
}

func applyMigrations(dbPath string) {
	db := openDB(dbPath)
	defer db.Close()

	migrator := migrations.NewMigrator(db, migrations.SQLite())
	if err := migrator.MigrateUp(); err != nil {
		log.Error("Error applying migrations: %v", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully!")
}

func showStatus(dbPath string) {
	db := openDB(dbPath)
	defer db.Close()

	migrator := migrations.NewMigrator(db, migrations.SQLite())
	if err := migrator.Initialize(); err != nil {
		log.Error("Error initializing migrations table: %v", err)
		os.Exit(1)
	}

	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		log.Error("Error reading applied migrations: %v", err)
		os.Exit(1)
	}
	all, err := migrator.LoadMigrations()
	if err != nil {
		log.Error("Error loading migrations: %v", err)
		os.Exit(1)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })
	for _, m := range all {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("%s  %-8s %s\n", m.Version, state, m.Description)
	}
}

func importStats(from, backend, target string) {
	ctx := context.Background()

	if backend == stats.BackendJSON {
		log.Error("Import target must be sqlite or postgres")
		os.Exit(1)
	}

	src, err := stats.NewFileRepository(from)
	if err != nil {
		log.Error("Error reading %s: %v", from, err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := stats.Open(ctx, backend, target)
	if err != nil {
		log.Error("Error opening %s target: %v", backend, err)
		os.Exit(1)
	}
	defer dst.Close()

	n, err := stats.Copy(ctx, dst, src)
	if err != nil {
		log.Error("Import stopped after %d records: %v", n, err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d records from %s into %s\n", n, from, backend)
}
