package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/charts"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/format"
	"github.com/de-tools/sales-atlas/pkg/services/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const categoryParam = "category"

//go:embed templates/*.html
var templateFS embed.FS

// Dashboard is the part of the dashboard service the handlers depend on
type Dashboard interface {
	Title() string
	Categories() []domain.Category
	Recompute(sel filter.Selection) *dashboard.View
}

type Router struct {
	dashboard Dashboard
	charts    charts.Registry
	page      *template.Template
}

func NewRouter(d Dashboard, registry charts.Registry) *Router {
	return &Router{
		dashboard: d,
		charts:    registry,
		page:      template.Must(template.New("index.html").Funcs(pageFuncs).ParseFS(templateFS, "templates/index.html")),
	}
}

func selectionFromRequest(r *http.Request) filter.Selection {
	values, present := r.URL.Query()[categoryParam]
	return filter.ParseSelection(values, present)
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload interface{}, msg string) {
	logger := zerolog.Ctx(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().
			Err(err).
			Msg(msg)
	}
}

func (h *Router) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, adapters.MapCategoriesToApi(h.dashboard.Categories()), "failed to encode categories")
}

func (h *Router) ListSales(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	rows := adapters.MapDailySalesDomainToApi(view.Sales)

	page, err := paginate(r, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, r, page, "failed to encode sales")
}

func (h *Router) ListCustomers(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	rows := adapters.MapDailyCustomersDomainToApi(view.Customers)

	page, err := paginate(r, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, r, page, "failed to encode customers")
}

func (h *Router) ListProducts(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	writeJSON(w, r, adapters.MapProductsDomainToApi(view.Products), "failed to encode products")
}

func (h *Router) SalesByCategory(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	writeJSON(w, r, adapters.MapCategoryTotalsToApi(view.CategoryTotals), "failed to encode category totals")
}

func (h *Router) GetSummary(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	writeJSON(w, r, adapters.MapSummaryToApi(view), "failed to encode summary")
}

func (h *Router) GetInsights(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Recompute(selectionFromRequest(r))
	writeJSON(w, r, adapters.MapInsightsToApi(view), "failed to encode insights")
}

func (h *Router) GetChart(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	name := chi.URLParam(r, "chart")
	imageFormat := charts.Format(chi.URLParam(r, "format"))
	if imageFormat == "" {
		imageFormat = charts.FormatPNG
	}

	view := h.dashboard.Recompute(selectionFromRequest(r))

	// Render into a buffer first so a failure can still change the status.
	var buf bytes.Buffer
	err := h.charts.Render(&buf, name, imageFormat, view)
	switch {
	case err == nil:
	case errors.Is(err, metrics.ErrEmptyInput):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, charts.ErrUnknownChart):
		http.Error(w, fmt.Sprintf("unknown chart %q", name), http.StatusNotFound)
		return
	case errors.Is(err, charts.ErrUnknownFormat):
		http.Error(w, fmt.Sprintf("unsupported image format %q. Supported formats: png, svg", imageFormat), http.StatusBadRequest)
		return
	default:
		logger.Error().
			Err(err).
			Str("chart", name).
			Msg("failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", imageFormat.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().
			Err(err).
			Str("chart", name).
			Msg("failed to write chart")
	}
}

func paginate[T any](r *http.Request, rows []T) (api.Page[T], error) {
	total := len(rows)
	limit, err := intParam(r, "limit", total)
	if err != nil {
		return api.Page[T]{}, err
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return api.Page[T]{}, err
	}

	if offset >= total {
		return api.Page[T]{Data: []T{}, Total: total, Limit: limit, Offset: offset}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return api.Page[T]{Data: rows[offset:end], Total: total, Limit: limit, Offset: offset}, nil
}

func intParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid '%s' value. Expected a non-negative integer", name)
	}
	return v, nil
}

// chartQuery rebuilds the category query string for chart image links.
func chartQuery(selection []domain.Category) string {
	q := url.Values{}
	if len(selection) == 0 {
		q.Add(categoryParam, "")
	}
	for _, c := range selection {
		q.Add(categoryParam, string(c))
	}
	return q.Encode()
}

var pageFuncs = template.FuncMap{
	"number":  format.Number,
	"percent": format.Percent,
	"float":   format.Float,
	"date": func(v interface{ Format(string) string }) string {
		return v.Format(api.DateLayout)
	},
}
