package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/tnguyen/foodlog/internal/cli"
	"github.com/tnguyen/foodlog/internal/db"
	"github.com/tnguyen/foodlog/internal/fdc"
	"github.com/tnguyen/foodlog/internal/repository"
	"github.com/tnguyen/foodlog/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.foodlog/foodlog.db
	dbPath := os.Getenv("FOODLOG_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".foodlog", "foodlog.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Plain output when not attached to a terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	planRepo := repository.NewSQLiteMealPlanRepo(database)
	mealRepo := repository.NewSQLiteMealRepo(database)
	entryRepo := repository.NewSQLiteFoodEntryRepo(database)
	foodRepo := repository.NewSQLiteFoodRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Plans:   service.NewPlanService(planRepo, mealRepo, entryRepo, foodRepo, uow),
		Catalog: service.NewCatalogService(foodRepo),
		Lookup:  fdc.NewSearcher(fdc.NewClient(fdc.LoadConfig())),
	}

	return cli.NewRootCmd(app).Execute()
}
