package category

import (
	"context"

	"github.com/finledger/finledger/internal/apperr"
)

// StubRepo is an in-memory Repo used by service tests.
type StubRepo struct {
	nextId     int
	data       map[Namespace][]Category
	ledgerRefs map[string]int // "namespace/name" -> reference count
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		data:       make(map[Namespace][]Category),
		ledgerRefs: make(map[string]int),
	}
}

// AddLedgerRef simulates a ledger entry referencing the category name.
func (s *StubRepo) AddLedgerRef(ns Namespace, name string) {
	s.ledgerRefs[string(ns)+"/"+name]++
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = make(map[Namespace][]Category)
	s.ledgerRefs = make(map[string]int)
}

func (s *StubRepo) List(ctx context.Context, ns Namespace) ([]Category, error) {
	return append([]Category(nil), s.data[ns]...), nil
}

func (s *StubRepo) Store(ctx context.Context, ns Namespace, name string) (int, error) {
	for _, c := range s.data[ns] {
		if c.Name == name {
			return 0, apperr.Validation("%s category %q already exists", ns, name)
		}
	}
	s.nextId++
	s.data[ns] = append(s.data[ns], Category{ID: s.nextId, Name: name})
	return s.nextId, nil
}

func (s *StubRepo) Find(ctx context.Context, ns Namespace, id int) (Category, error) {
	for _, c := range s.data[ns] {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, apperr.NotFound("%s category %d not found", ns, id)
}

func (s *StubRepo) CountLedgerRefs(ctx context.Context, ns Namespace, id int) (int, error) {
	for _, c := range s.data[ns] {
		if c.ID == id {
			return s.ledgerRefs[string(ns)+"/"+c.Name], nil
		}
	}
	return 0, nil
}

func (s *StubRepo) Delete(ctx context.Context, ns Namespace, id int) (bool, error) {
	for i, c := range s.data[ns] {
		if c.ID == id {
			s.data[ns] = append(s.data[ns][:i], s.data[ns][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
