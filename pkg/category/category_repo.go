package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/finledger/finledger/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	List(ctx context.Context, ns Namespace) ([]Category, error)
	// Store stores a new category and returns its generated id.
	Store(ctx context.Context, ns Namespace, name string) (int, error)
	Find(ctx context.Context, ns Namespace, id int) (Category, error)
	// CountLedgerRefs counts ledger rows whose denormalized category string
	// equals the name of the category with the given id.
	CountLedgerRefs(ctx context.Context, ns Namespace, id int) (int, error)
	Delete(ctx context.Context, ns Namespace, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) List(ctx context.Context, ns Namespace) ([]Category, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY id", ns.table())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing %s categories", ns)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, apperr.Store(err, "listing %s categories", ns)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, apperr.Store(err, "listing %s categories", ns)
	}

	return categories, nil
}

func (r *RepoImpl) Store(ctx context.Context, ns Namespace, name string) (int, error) {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", ns.table())
	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, apperr.Validation("%s category %q already exists", ns, name)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing %s category", ns)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "storing %s category", ns)
	}

	return int(lastInsertID), nil
}

func (r *RepoImpl) Find(ctx context.Context, ns Namespace, id int) (Category, error) {
	query := fmt.Sprintf("SELECT id, name FROM %s WHERE id = ?", ns.table())
	row := r.db.QueryRowContext(ctx, query, id)

	var c Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return Category{}, apperr.NotFound("%s category %d not found", ns, id)
		}
		err := fmt.Errorf("could not scan category: %w", err)
		log.Error(err)
		return Category{}, apperr.Store(err, "finding %s category", ns)
	}
	return c, nil
}

func (r *RepoImpl) CountLedgerRefs(ctx context.Context, ns Namespace, id int) (int, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE category = (SELECT name FROM %s WHERE id = ?)",
		ns.ledgerTable(), ns.table(),
	)
	row := r.db.QueryRowContext(ctx, query, id)

	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not count ledger references: %w", err)
		log.Error(err)
		return 0, apperr.Store(err, "counting references to %s category %d", ns, id)
	}
	return count, nil
}

func (r *RepoImpl) Delete(ctx context.Context, ns Namespace, id int) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", ns.table())
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "deleting %s category", ns)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, apperr.Store(err, "deleting %s category", ns)
	}
	return rowsAffected == 1, nil
}
