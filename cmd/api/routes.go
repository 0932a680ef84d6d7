package main

import (
	"log/slog"
	"net/http"

	"orcamentos/internal/shared/config"
	"orcamentos/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/google", deps.AuthHandler.HandleGoogleSignIn)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Auth(deps.JWT)(h))
	}

	protected("/api/users/me", deps.UserHandler.HandleMe)

	protected("/api/orcamentos", deps.BudgetHandler.HandleBudgets)
	protected("/api/orcamentos/{id}", deps.BudgetHandler.HandleBudgetByID)
	protected("/api/orcamentos/{id}/gastos-fixos", deps.ExpenseHandler.HandleFixed)
	protected("/api/orcamentos/{id}/gastos-fixos/{gastoID}", deps.ExpenseHandler.HandleFixedByID)
	protected("/api/orcamentos/{id}/gastos-variados", deps.ExpenseHandler.HandleVariable)
	protected("/api/orcamentos/{id}/gastos-variados/{gastoID}", deps.ExpenseHandler.HandleVariableByID)

	protected("/api/categorias-gastos", deps.SpendingCategoryHandler.HandleCategories)
	protected("/api/categorias-gastos/{id}", deps.SpendingCategoryHandler.HandleCategoryByID)
	protected("/api/categorias-investimentos", deps.InvestmentCategoryHandler.HandleCategories)
	protected("/api/categorias-investimentos/{id}", deps.InvestmentCategoryHandler.HandleCategoryByID)

	protected("/api/investimentos", deps.InvestmentHandler.HandleInvestments)
	protected("/api/investimentos/{id}", deps.InvestmentHandler.HandleInvestmentByID)
	protected("/api/investimentos/{id}/linha-do-tempo", deps.InvestmentHandler.HandleTimeline)
	protected("/api/investimentos/{id}/linha-do-tempo/{registroID}", deps.InvestmentHandler.HandleTimelineEntry)

	// Apply global middleware
	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.CORS(cfg.Server.AllowedHosts),
	}
	if cfg.Telemetry.Enabled {
		chain = append(chain, middleware.Telemetry(cfg.Telemetry.ServiceName))
	}
	handler := middleware.Chain(chain...)(mux)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		logger.Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
