package category

import (
	"context"
	"strings"

	"github.com/finledger/finledger/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context, ns Namespace) ([]Category, error)
	Create(ctx context.Context, ns Namespace, name string) (Category, error)
	// Delete removes a category. It fails when any ledger row still references
	// the category's name; rows added before a delete keep their denormalized
	// name string.
	Delete(ctx context.Context, ns Namespace, id int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context, ns Namespace) ([]Category, error) {
	return s.repo.List(ctx, ns)
}

func (s *ServiceImpl) Create(ctx context.Context, ns Namespace, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, apperr.Validation("category name cannot be empty")
	}

	id, err := s.repo.Store(ctx, ns, name)
	if err != nil {
		return Category{}, err
	}
	log.Debugf("created %s category %q (%d)", ns, name, id)
	return Category{ID: id, Name: name}, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ns Namespace, id int) error {
	if _, err := s.repo.Find(ctx, ns, id); err != nil {
		return err
	}

	refs, err := s.repo.CountLedgerRefs(ctx, ns, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperr.Referential("cannot delete %s category %d: %d ledger entries use it", ns, id, refs)
	}

	deleted, err := s.repo.Delete(ctx, ns, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("%s category %d not found", ns, id)
	}
	return nil
}
