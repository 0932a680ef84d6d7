package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"orcamentos/internal/domain/budget"
	"orcamentos/internal/domain/category"
	"orcamentos/internal/domain/investment"
	"orcamentos/internal/domain/user"
	"orcamentos/internal/infrastructure/postgres"
	"orcamentos/internal/shared/config"
	"orcamentos/internal/shared/logger"
)

const usage = `Orcamentos Admin CLI - Management commands for the Orcamentos API

Usage:
  admin <command> [options]

Commands:
  migrate          Apply pending database migrations
  migrate-status   List migrations and whether they are applied
  summary          Print derived budget and investment values per user

Examples:
  # Apply migrations
  admin migrate

  # Summarize a single user
  admin summary --user-id=1

  # Summarize several users
  admin summary --user-id=1,2,3

  # Summarize every user with 8 concurrent workers
  admin summary --all --workers=8 --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	_ = godotenv.Load()

	command := os.Args[1]

	var err error
	switch command {
	case "migrate":
		err = runMigrate()
	case "migrate-status":
		err = runMigrateStatus()
	case "summary":
		err = runSummary(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		slog.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *postgres.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format))

	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.DBName)
	return cfg, db, nil
}

func runMigrate() error {
	_, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgres.Migrate(context.Background(), db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Printf("Applied %d\n", v)
	}
	return nil
}

func runMigrateStatus() error {
	_, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := postgres.MigrateStatus(context.Background(), db)
	if err != nil {
		return err
	}
	for _, s := range status {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Printf("%-8s %5d  %s\n", state, s.Version, s.Path)
	}
	return nil
}

func runSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to summarize (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Summarize all users")
	workers := fs.Int("workers", DefaultWorkerCount, "Number of concurrent workers")
	timeout := fs.Duration("timeout", 5*time.Minute, "Timeout for the operation (e.g., 30s, 5m)")

	fs.Usage = func() {
		fmt.Println("Usage: admin summary [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userIDStr == "" && !*allUsers {
		fs.Usage()
		return errors.New("must specify --user-id or --all")
	}

	var userIDs []int64
	if !*allUsers {
		ids, err := parseUserIDs(*userIDStr)
		if err != nil {
			return err
		}
		userIDs = ids
	}

	_, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	categoryService := category.NewService(postgres.NewCategoryRepository(db), postgres.NewTxManager(db))
	budgetService := budget.NewService(postgres.NewBudgetRepository(db))
	investmentService := investment.NewService(postgres.NewInvestmentRepository(db), postgres.NewTimelineRepository(db), categoryService)

	if *allUsers {
		users, err := user.NewService(postgres.NewUserRepository(db)).ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
		slog.Info("found users", "count", len(userIDs))
	}

	if len(userIDs) == 0 {
		fmt.Println("No users to process")
		return nil
	}

	slog.Info("starting summary", "users", len(userIDs), "workers", *workers)
	start := time.Now()

	summaries, err := collectSummaries(ctx, userIDs, *workers, budgetService, investmentService)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		printSummary(os.Stdout, s)
	}

	slog.Info("summary completed", "elapsed", time.Since(start))
	return nil
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid user ID %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
