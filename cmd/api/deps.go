package main

import (
	"context"
	"fmt"
	"log/slog"

	"orcamentos/internal/domain/budget"
	"orcamentos/internal/domain/category"
	"orcamentos/internal/domain/expense"
	"orcamentos/internal/domain/investment"
	"orcamentos/internal/domain/user"
	"orcamentos/internal/infrastructure/firebase"
	"orcamentos/internal/infrastructure/postgres"
	httphandlers "orcamentos/internal/interfaces/http"
	"orcamentos/internal/shared/auth"
	"orcamentos/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler               *httphandlers.AuthHandler
	UserHandler               *httphandlers.UserHandler
	HealthHandler             *httphandlers.HealthHandler
	BudgetHandler             *httphandlers.BudgetHandler
	ExpenseHandler            *httphandlers.ExpenseHandler
	SpendingCategoryHandler   *httphandlers.CategoryHandler
	InvestmentCategoryHandler *httphandlers.CategoryHandler
	InvestmentHandler         *httphandlers.InvestmentHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", "count", len(applied))
	}

	identity, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.ProjectID, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	fixedRepo := postgres.NewFixedExpenseRepository(db)
	variableRepo := postgres.NewVariableExpenseRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	timelineRepo := postgres.NewTimelineRepository(db)

	// Initialize domain services
	userService := user.NewService(userRepo)
	categoryService := category.NewService(categoryRepo, txManager)
	budgetService := budget.NewService(budgetRepo)
	expenseService := expense.NewService(fixedRepo, variableRepo, budgetService, categoryService, txManager)
	investmentService := investment.NewService(investmentRepo, timelineRepo, categoryService)

	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Dependencies{
		DB:                        db,
		AuthHandler:               httphandlers.NewAuthHandler(userService, identity, jwt, cfg.TLS.Enabled, logger),
		UserHandler:               httphandlers.NewUserHandler(userService, logger),
		HealthHandler:             httphandlers.NewHealthHandler(db, logger),
		BudgetHandler:             httphandlers.NewBudgetHandler(budgetService, logger),
		ExpenseHandler:            httphandlers.NewExpenseHandler(expenseService, logger),
		SpendingCategoryHandler:   httphandlers.NewCategoryHandler(categoryService, category.KindSpending, logger),
		InvestmentCategoryHandler: httphandlers.NewCategoryHandler(categoryService, category.KindInvestment, logger),
		InvestmentHandler:         httphandlers.NewInvestmentHandler(investmentService, logger),
		JWT:                       jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
