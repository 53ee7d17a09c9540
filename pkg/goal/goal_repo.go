package goal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Store stores a new goal and returns its generated id.
	Store(ctx context.Context, g Goal) (int, error)
	List(ctx context.Context) ([]Goal, error)
	Find(ctx context.Context, id int) (Goal, error)
	UpdateTarget(ctx context.Context, id int, target decimal.Decimal) (bool, error)
	// SumSaved sums Saved over all goals.
	SumSaved(ctx context.Context) (decimal.Decimal, error)
	// ApplyAllocations credits each assignment's goal inside one transaction.
	ApplyAllocations(ctx context.Context, assignments []Assignment) error
	// Withdraw debits the goal. Fails when amount exceeds the saved balance;
	// the balance is re-read inside the transaction.
	Withdraw(ctx context.Context, id int, amount decimal.Decimal) error
	// Transfer debits one goal and credits another inside one transaction so
	// a partial application is never observable.
	Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, g Goal) (int, error) {
	query := "INSERT INTO savings_goals (goal_name, target_amount, current_saved, target_date) VALUES (?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query,
		g.Name,
		g.Target.String(),
		g.Saved.String(),
		g.TargetDate.Format(DateLayout),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing goal")
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing goal")
	}

	return int(lastInsertID), nil
}

func (r *RepoImpl) List(ctx context.Context) ([]Goal, error) {
	query := "SELECT id, goal_name, target_amount, current_saved, target_date FROM savings_goals ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing goals")
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, apperr.Store(err, "listing goals")
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing goals")
	}

	return goals, nil
}

func (r *RepoImpl) Find(ctx context.Context, id int) (Goal, error) {
	query := "SELECT id, goal_name, target_amount, current_saved, target_date FROM savings_goals WHERE id = ?"
	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Goal{}, apperr.NotFound("goal %d not found", id)
		}
		log.Error(err)
		return Goal{}, apperr.Store(err, "finding goal")
	}
	return g, nil
}

func (r *RepoImpl) UpdateTarget(ctx context.Context, id int, target decimal.Decimal) (bool, error) {
	query := "UPDATE savings_goals SET target_amount = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, target.String(), id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "updating goal target")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "updating goal target")
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) SumSaved(ctx context.Context) (decimal.Decimal, error) {
	goals, err := r.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, g := range goals {
		sum = sum.Add(g.Saved)
	}
	return sum, nil
}

func (r *RepoImpl) ApplyAllocations(ctx context.Context, assignments []Assignment) error {
	return r.inTransaction(ctx, "applying allocations", func(tx *sql.Tx) error {
		for _, a := range assignments {
			if err := addToSaved(ctx, tx, a.GoalID, a.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RepoImpl) Withdraw(ctx context.Context, id int, amount decimal.Decimal) error {
	return r.inTransaction(ctx, "withdrawing savings", func(tx *sql.Tx) error {
		saved, err := savedForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if amount.GreaterThan(saved) {
			return apperr.Validation("cannot remove more than the saved amount (%s)", saved)
		}
		return writeSaved(ctx, tx, id, saved.Sub(amount))
	})
}

func (r *RepoImpl) Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) error {
	return r.inTransaction(ctx, "transferring savings", func(tx *sql.Tx) error {
		fromSaved, err := savedForUpdate(ctx, tx, fromID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(fromSaved) {
			return apperr.Validation("cannot transfer more than the saved amount (%s)", fromSaved)
		}
		toSaved, err := savedForUpdate(ctx, tx, toID)
		if err != nil {
			return err
		}
		if err := writeSaved(ctx, tx, fromID, fromSaved.Sub(amount)); err != nil {
			return err
		}
		return writeSaved(ctx, tx, toID, toSaved.Add(amount))
	})
}

// inTransaction runs fn inside a transaction; any error rolls everything back.
func (r *RepoImpl) inTransaction(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return apperr.Store(err, "%s", op)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Errorf("could not roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return apperr.Store(err, "%s", op)
	}
	return nil
}

// savedForUpdate reads a goal's saved balance inside the transaction. Amounts
// are decimal strings, so arithmetic happens in Go, not in SQL.
func savedForUpdate(ctx context.Context, tx *sql.Tx, id int) (decimal.Decimal, error) {
	var savedString string
	err := tx.QueryRowContext(ctx, "SELECT current_saved FROM savings_goals WHERE id = ?", id).Scan(&savedString)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, apperr.NotFound("goal %d not found", id)
		}
		log.Error(err)
		return decimal.Zero, apperr.Store(err, "reading goal %d", id)
	}
	saved, err := decimal.NewFromString(savedString)
	if err != nil {
		err := fmt.Errorf("could not parse saved amount %q: %w", savedString, err)
		log.Error(err)
		return decimal.Zero, apperr.Store(err, "reading goal %d", id)
	}
	return saved, nil
}

func writeSaved(ctx context.Context, tx *sql.Tx, id int, saved decimal.Decimal) error {
	if saved.IsNegative() {
		return apperr.Validation("saved amount of goal %d would become negative", id)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE savings_goals SET current_saved = ? WHERE id = ?", saved.String(), id); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return apperr.Store(err, "updating goal %d", id)
	}
	return nil
}

func addToSaved(ctx context.Context, tx *sql.Tx, id int, amount decimal.Decimal) error {
	saved, err := savedForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	return writeSaved(ctx, tx, id, saved.Add(amount))
}

func scanGoal(scan func(dest ...any) error) (Goal, error) {
	var g Goal
	var targetString, savedString, dateString string
	if err := scan(&g.ID, &g.Name, &targetString, &savedString, &dateString); err != nil {
		return Goal{}, err
	}

	target, err := decimal.NewFromString(targetString)
	if err != nil {
		return Goal{}, fmt.Errorf("could not parse target amount %q: %w", targetString, err)
	}
	saved, err := decimal.NewFromString(savedString)
	if err != nil {
		return Goal{}, fmt.Errorf("could not parse saved amount %q: %w", savedString, err)
	}
	date, err := time.Parse(DateLayout, dateString)
	if err != nil {
		return Goal{}, fmt.Errorf("could not parse target date %q: %w", dateString, err)
	}

	g.Target = target
	g.Saved = saved
	g.TargetDate = date
	return g, nil
}
