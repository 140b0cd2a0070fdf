package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ansdeepu/xpensemanager-sub000/internal/config"
	"github.com/ansdeepu/xpensemanager-sub000/internal/database"
	"github.com/ansdeepu/xpensemanager-sub000/internal/database/repository"
	"github.com/ansdeepu/xpensemanager-sub000/internal/service"
	"github.com/ansdeepu/xpensemanager-sub000/internal/taxonomy"
	"github.com/ansdeepu/xpensemanager-sub000/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if cfg.Demo.Seed {
		if err := database.SeedDemo(ctx, db); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	tax, err := taxonomy.Load(filepath.Join(os.Getenv("HOME"), ".config", "xpensemanager"))
	if err != nil {
		log.Fatalf("categories: %v", err)
	}

	ledgerSvc := &service.LedgerService{
		Accounts:     repository.NewAccountRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Loans:        repository.NewLoanRepo(db),
		WalletPrefs:  repository.NewWalletPrefsRepo(db),
		Budgets:      repository.NewBudgetRepo(db),
	}
	maintenance := &service.MaintenanceService{DB: db}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Services{Ledger: ledgerSvc, Maintenance: maintenance},
		tax, loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
