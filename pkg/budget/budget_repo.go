package budget

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Upsert inserts the budget or overwrites the amount when the
	// (category, month, year) triple already exists.
	Upsert(ctx context.Context, b Budget) error
	Find(ctx context.Context, category string, month, year int) (Budget, error)
	// List returns all budgets ordered by (year, month, category).
	List(ctx context.Context) ([]Budget, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Upsert(ctx context.Context, b Budget) error {
	query := `INSERT INTO budget (category, budget_amount, month, year)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(category, month, year)
			  DO UPDATE SET budget_amount = excluded.budget_amount`
	if _, err := r.db.ExecContext(ctx, query, b.Category, b.Amount.String(), b.Month, b.Year); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return apperr.Store(err, "upserting budget")
	}
	return nil
}

func (r *RepoImpl) Find(ctx context.Context, category string, month, year int) (Budget, error) {
	query := "SELECT id, category, budget_amount, month, year FROM budget WHERE category = ? AND month = ? AND year = ?"
	row := r.db.QueryRowContext(ctx, query, category, month, year)

	b, err := scanBudget(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Budget{}, apperr.NotFound("no budget set for %q for %d/%d", category, month, year)
		}
		log.Error(err)
		return Budget{}, apperr.Store(err, "finding budget")
	}
	return b, nil
}

func (r *RepoImpl) List(ctx context.Context) ([]Budget, error) {
	query := "SELECT id, category, budget_amount, month, year FROM budget ORDER BY year, month, category"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing budgets")
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		b, err := scanBudget(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, apperr.Store(err, "listing budgets")
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing budgets")
	}

	return budgets, nil
}

func scanBudget(scan func(dest ...any) error) (Budget, error) {
	var b Budget
	var amountString string
	if err := scan(&b.ID, &b.Category, &amountString, &b.Month, &b.Year); err != nil {
		return Budget{}, err
	}
	amount, err := decimal.NewFromString(amountString)
	if err != nil {
		return Budget{}, fmt.Errorf("could not parse budget amount %q: %w", amountString, err)
	}
	b.Amount = amount
	return b, nil
}
