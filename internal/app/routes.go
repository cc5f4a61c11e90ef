package app

import (
	"github.com/clearpiggy/clearpiggy/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Workspace
	r.HandleFunc("/api/workspace/current", deps.WorkspaceHandler.CurrentWorkspace).Methods("GET")
	r.HandleFunc("/api/workspace", deps.WorkspaceHandler.CreateWorkspace).Methods("POST")
	r.HandleFunc("/api/workspace", deps.WorkspaceHandler.GetAvailableWorkspaces).Methods("GET")

	// Budget
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/active", deps.BudgetHandler.GetActive).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/{id}/line/{lineId}", deps.BudgetHandler.SetLineAmount).Methods("PUT")

	// Strategy conversion + audit trail
	r.HandleFunc("/api/budget/{id}/strategy", deps.ConversionHandler.Convert).Methods("POST")
	r.HandleFunc("/api/budget/{id}/strategy/history", deps.BudgetHandler.StrategyHistory).Methods("GET")

	// Performance reconciliation
	r.HandleFunc("/api/budget/{id}/performance", deps.PerformanceHandler.GetForBudget).Methods("GET")
	r.HandleFunc("/api/performance", deps.PerformanceHandler.GetForActiveBudget).Methods("GET")

	// Ledger (read-only + aggregator webhook)
	r.HandleFunc("/api/transaction", deps.LedgerHandler.GetTransactions).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/transaction/notify", deps.LedgerHandler.Notify).Methods("POST")

	// Transaction overrides
	r.HandleFunc("/api/override", deps.OverrideHandler.Create).Methods("POST")
	r.HandleFunc("/api/override", deps.OverrideHandler.GetAllForBudget).Queries("budgetId", "{budgetId}").Methods("GET")
	r.HandleFunc("/api/override/{id}", deps.OverrideHandler.Delete).Methods("DELETE")

	// Insights
	r.HandleFunc("/api/insights", deps.InsightsHandler.Get).Methods("GET")
}
