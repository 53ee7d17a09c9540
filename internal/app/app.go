package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/finledger/finledger/internal/config"
	"github.com/finledger/finledger/internal/database"
	"github.com/finledger/finledger/pkg/menu"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *sql.DB
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// RunMenu runs the interactive menu controller on the terminal and blocks
// until the user quits.
func (a *Application) RunMenu(ctx context.Context) error {
	runner := menu.NewRunner(
		a.deps.CategoryService,
		a.deps.LedgerService,
		a.deps.BudgetService,
		a.deps.GoalService,
		a.deps.Clock,
		a.cfg.Report.Currency,
		os.Stdin,
		os.Stdout,
	)
	return runner.Run(ctx)
}
