package app

import (
	"database/sql"

	"github.com/finledger/finledger/internal/config"
	"github.com/finledger/finledger/internal/event_bus"
	"github.com/finledger/finledger/internal/utils"
	"github.com/finledger/finledger/pkg/budget"
	"github.com/finledger/finledger/pkg/category"
	"github.com/finledger/finledger/pkg/goal"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/finledger/finledger/pkg/report"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	CategoryRepo    category.Repo
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	LedgerRepo    ledger.Repo
	LedgerService *ledger.ServiceImpl
	LedgerHandler *ledger.Handler

	BudgetRepo        budget.Repo
	BudgetService     *budget.ServiceImpl
	BudgetHandler     *budget.Handler
	OverspendNotifier *budget.OverspendNotifier

	GoalRepo    goal.Repo
	GoalService *goal.ServiceImpl
	GoalHandler *goal.Handler

	ReportService *report.ServiceImpl
	CsvRenderer   *report.CsvRendererImpl
	ReportHandler *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()

	deps.CategoryRepo = category.NewRepo(db)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.LedgerRepo = ledger.NewRepo(db)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo, deps.CategoryRepo, deps.Bus)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService)

	deps.BudgetRepo = budget.NewRepo(db)
	deps.BudgetService = budget.NewService(deps.BudgetRepo, deps.LedgerRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)
	deps.OverspendNotifier = budget.NewOverspendNotifier(deps.BudgetService)
	deps.OverspendNotifier.Register(deps.Bus)

	deps.GoalRepo = goal.NewRepo(db)
	deps.GoalService = goal.NewService(deps.GoalRepo, deps.BudgetService)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.ReportService = report.NewService(deps.BudgetService)
	deps.CsvRenderer = report.NewCsvRenderer(cfg.Report.Currency)
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvRenderer)

	deps.Clock = &utils.SystemClock{}

	return deps
}
