package ledger

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
	// Store stores a new entry and returns its generated id.
	Store(ctx context.Context, kind Kind, entry Entry) (int, error)
	Find(ctx context.Context, kind Kind, id int) (Entry, error)
	// FindForPeriod returns entries matching month/year of the entry date and,
	// when category is non-empty, the exact category name. Ordered by id.
	FindForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) ([]Entry, error)
	UpdateAmount(ctx context.Context, kind Kind, id int, amount decimal.Decimal) (bool, error)
	// SumForPeriod sums entry amounts for the period, optionally restricted to
	// one category. Zero when no rows match.
	SumForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) (decimal.Decimal, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, kind Kind, entry Entry) (int, error) {
	query := fmt.Sprintf("INSERT INTO %s (category, amount, timestamp) VALUES (?, ?, ?)", kind.table())
	result, err := r.db.ExecContext(ctx, query,
		entry.Category,
		entry.Amount.String(),
		entry.Date.Format(DateLayout),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing %s entry", kind)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing %s entry", kind)
	}

	return int(lastInsertID), nil
}

func (r *RepoImpl) Find(ctx context.Context, kind Kind, id int) (Entry, error) {
	query := fmt.Sprintf("SELECT id, category, amount, timestamp FROM %s WHERE id = ?", kind.table())
	row := r.db.QueryRowContext(ctx, query, id)

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, apperr.NotFound("%s entry %d not found", kind, id)
		}
		log.Error(err)
		return Entry{}, apperr.Store(err, "finding %s entry", kind)
	}
	return entry, nil
}

func (r *RepoImpl) FindForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) ([]Entry, error) {
	query := fmt.Sprintf(
		"SELECT id, category, amount, timestamp FROM %s WHERE strftime('%%m', timestamp) = ? AND strftime('%%Y', timestamp) = ?",
		kind.table(),
	)
	args := []any{fmt.Sprintf("%02d", month), fmt.Sprintf("%d", year)}
	if categoryName != "" {
		query += " AND category = ?"
		args = append(args, categoryName)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query %s entries: %w", kind, err)
		log.Error(err)
		return nil, apperr.Store(err, "listing %s entries", kind)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, apperr.Store(err, "listing %s entries", kind)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing %s entries", kind)
	}

	return entries, nil
}

func (r *RepoImpl) UpdateAmount(ctx context.Context, kind Kind, id int, amount decimal.Decimal) (bool, error) {
	query := fmt.Sprintf("UPDATE %s SET amount = ? WHERE id = ?", kind.table())
	result, err := r.db.ExecContext(ctx, query, amount.String(), id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "updating %s entry", kind)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "updating %s entry", kind)
	}
	return rowsAffected == 1, nil
}

// SumForPeriod adds amounts in Go rather than with SQL SUM: amounts are stored
// as decimal strings to keep money exact.
func (r *RepoImpl) SumForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) (decimal.Decimal, error) {
	entries, err := r.FindForPeriod(ctx, kind, month, year, categoryName)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func scanEntry(scan func(dest ...any) error) (Entry, error) {
	var entry Entry
	var amountString, dateString string
	if err := scan(&entry.ID, &entry.Category, &amountString, &dateString); err != nil {
		return Entry{}, err
	}

	amount, err := decimal.NewFromString(amountString)
	if err != nil {
		return Entry{}, fmt.Errorf("could not parse amount %q: %w", amountString, err)
	}
	entry.Amount = amount

	date, err := time.Parse(DateLayout, dateString)
	if err != nil {
		return Entry{}, fmt.Errorf("could not parse date %q: %w", dateString, err)
	}
	entry.Date = date

	return entry, nil
}
