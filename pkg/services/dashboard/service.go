package dashboard

import (
	"sync"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/monitoring"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
)

const (
	DefaultTitle    = "Online Sales Panel S.A."
	DefaultCurrency = "R$"
)

type Options struct {
	Title    string
	Currency string
}

// Service serves derived views over an immutable dataset. Only the most
// recent view is kept; it is rebuilt when the selection changes.
type Service struct {
	dataset *domain.Dataset
	opts    Options

	mu      sync.Mutex
	lastKey string
	last    *View
}

func NewService(dataset *domain.Dataset, opts Options) *Service {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	return &Service{
		dataset: dataset,
		opts:    opts,
	}
}

func (s *Service) Title() string {
	return s.opts.Title
}

func (s *Service) Currency() string {
	return s.opts.Currency
}

func (s *Service) Dataset() *domain.Dataset {
	return s.dataset
}

// Categories lists the options offered by the category multi-select.
func (s *Service) Categories() []domain.Category {
	return domain.AllCategories()
}

// Recompute returns the view for sel, reusing the previous view when the
// selection did not change.
func (s *Service) Recompute(sel filter.Selection) *View {
	key := sel.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && s.lastKey == key {
		return s.last
	}

	s.last = buildView(s.dataset, sel, s.opts)
	s.lastKey = key
	monitoring.DashboardRecomputes.Inc()
	return s.last
}
