package app

import (
	"github.com/finledger/finledger/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Categories (namespace is "expense" or "income")
	r.HandleFunc("/api/categories/{namespace}", deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/categories/{namespace}", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/categories/{namespace}/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Ledger (kind is "expense" or "income")
	r.HandleFunc("/api/ledger/{kind}", deps.LedgerHandler.Add).Methods("POST")
	r.HandleFunc("/api/ledger/{kind}", deps.LedgerHandler.View).Queries("month", "{month}", "year", "{year}").Methods("GET")
	r.HandleFunc("/api/ledger/{kind}/{id}/amount", deps.LedgerHandler.UpdateAmount).Methods("PUT")

	// Budgets
	r.HandleFunc("/api/budgets", deps.BudgetHandler.Set).Methods("PUT")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.List).Methods("GET")
	r.HandleFunc("/api/budgets/evaluation", deps.BudgetHandler.Evaluate).
		Queries("category", "{category}", "month", "{month}", "year", "{year}").Methods("GET")
	r.HandleFunc("/api/budgets/net", deps.BudgetHandler.NetForPeriod).
		Queries("month", "{month}", "year", "{year}").Methods("GET")

	// Savings goals
	r.HandleFunc("/api/goals", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goals", deps.GoalHandler.List).Methods("GET")
	r.HandleFunc("/api/goals/excess", deps.GoalHandler.AvailableExcess).
		Queries("month", "{month}", "year", "{year}").Methods("GET")
	r.HandleFunc("/api/goals/allocations", deps.GoalHandler.Allocate).Methods("POST")
	r.HandleFunc("/api/goals/{id}/target", deps.GoalHandler.UpdateTarget).Methods("PUT")
	r.HandleFunc("/api/goals/{id}/withdrawal", deps.GoalHandler.Withdraw).Methods("POST")
	r.HandleFunc("/api/goals/{id}/progress", deps.GoalHandler.Progress).Methods("GET")

	// Reports
	r.HandleFunc("/api/reports/monthly", deps.ReportHandler.Monthly).
		Queries("month", "{month}", "year", "{year}").Methods("GET")
}
