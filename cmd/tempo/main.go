package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/llm"
	"github.com/alexanderramin/tempo/internal/planner"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/todoist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tempo/tempo.db
	dbPath := os.Getenv("TEMPO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tempo", "tempo.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLitePlanSessionRepo(database)

	// Reasoning backend.
	llmCfg := llm.LoadConfig()
	var llmObserver llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		llmObserver = llm.NewLogObserver(os.Stderr)
	}
	llmClient := llm.NewOllamaClient(llmCfg, llmObserver)

	// Context providers.
	calendarCfg := calendar.LoadConfig()
	calendarProvider := calendar.NewProvider(calendar.NewHTTPClient(calendarCfg), calendarCfg)

	todoistCfg := todoist.LoadConfig()
	todoProvider := todoist.NewProvider(todoist.NewHTTPClient(todoistCfg), todoistCfg)

	engine := planner.NewEngine(llmClient, calendarProvider, todoProvider, planner.LoadConfig())

	var serviceObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("TEMPO_LOG") != "" {
		serviceObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Planner: service.NewPlannerService(sessionRepo, engine, serviceObserver),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
