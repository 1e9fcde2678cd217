package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// Source is the read side of the remote store.
type Source interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetListings(ctx context.Context) ([]domain.Listing, error)
	GetDashboardMetrics(ctx context.Context) (domain.Metrics, error)
}

// Snapshot is one load of the three collection resources. A nil member
// means that resource could not be fetched; its error is in the matching
// *Err field.
type Snapshot struct {
	Categories []domain.Category
	Listings   []domain.Listing
	Metrics    *domain.Metrics

	CategoriesErr error
	ListingsErr   error
	MetricsErr    error
}

// Err joins the per-resource failures, or nil when everything loaded.
func (s Snapshot) Err() error {
	return errors.Join(
		wrapIf("categories", s.CategoriesErr),
		wrapIf("listings", s.ListingsErr),
		wrapIf("metrics", s.MetricsErr),
	)
}

func wrapIf(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}

// LoadSnapshot fetches categories, listings and metrics in parallel. One
// failing fetch never cancels the others.
func LoadSnapshot(ctx context.Context, src Source) Snapshot {
	// Plain Group, no WithContext: each closure records its own failure and
	// returns nil, so a failed fetch never cancels its siblings.
	var (
		s Snapshot
		g errgroup.Group
	)

	g.Go(func() error {
		cats, err := src.GetCategories(ctx)
		if err != nil {
			s.CategoriesErr = err
			return nil
		}
		if cats == nil {
			cats = []domain.Category{}
		}
		s.Categories = cats
		return nil
	})
	g.Go(func() error {
		ls, err := src.GetListings(ctx)
		if err != nil {
			s.ListingsErr = err
			return nil
		}
		if ls == nil {
			ls = []domain.Listing{}
		}
		s.Listings = ls
		return nil
	})
	g.Go(func() error {
		m, err := src.GetDashboardMetrics(ctx)
		if err != nil {
			s.MetricsErr = err
			return nil
		}
		s.Metrics = &m
		return nil
	})

	_ = g.Wait()
	return s
}
