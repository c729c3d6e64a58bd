package charts

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/monitoring"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/wcharczuk/go-chart/v2"
)

var (
	ErrUnknownChart  = errors.New("unknown chart")
	ErrUnknownFormat = errors.New("unknown image format")
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Renderer draws one chart of a dashboard view.
type Renderer func(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error

// Registry manages the named chart renderers
type Registry interface {
	Register(name string, renderer Renderer) error
	Render(w io.Writer, name string, format Format, view *dashboard.View) error
	Names() []string
}

type registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() Registry {
	return &registry{
		renderers: make(map[string]Renderer),
	}
}

// DefaultRegistry returns a registry holding every dashboard chart.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register("sales", SalesOverTime)
	_ = r.Register("categories", SalesByCategory)
	_ = r.Register("customers", NewCustomersPerDay)
	_ = r.Register("satisfaction", SatisfactionOverTime)
	_ = r.Register("products", TopProducts)
	return r
}

func (r *registry) Register(name string, renderer Renderer) error {
	if name == "" {
		return fmt.Errorf("chart name cannot be empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("chart %q is already registered", name)
	}

	r.renderers[name] = renderer
	return nil
}

func (r *registry) Render(w io.Writer, name string, format Format, view *dashboard.View) error {
	r.mu.RLock()
	renderer, exists := r.renderers[name]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}

	rp, err := format.provider()
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { monitoring.RecordChartRender(name, time.Since(start)) }()

	return renderer(rp, w, view)
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
