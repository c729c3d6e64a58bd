package dashboard

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
)

type categoryOption struct {
	Name     string
	Selected bool
}

type chartLink struct {
	Title string
	URL   string
	Empty bool
}

type pageData struct {
	Title           string
	Selection       string
	Options         []categoryOption
	View            *dashboard.View
	Charts          []chartLink
	Conclusions     []string
	Recommendations []string
}

func (h *Router) Page(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	sel := selectionFromRequest(r)
	view := h.dashboard.Recompute(sel)

	data := pageData{
		Title:           h.dashboard.Title(),
		Selection:       strings.Join(adapters.MapCategoriesToApi(view.Selection), ", "),
		View:            view,
		Conclusions:     view.Conclusions(),
		Recommendations: view.Recommendations(),
	}
	for _, c := range h.dashboard.Categories() {
		data.Options = append(data.Options, categoryOption{Name: string(c), Selected: sel.Contains(c)})
	}

	query := chartQuery(view.Selection)
	charts := []struct {
		name, title string
		empty       bool
	}{
		{"sales", "Sales over time", len(view.Sales) == 0},
		{"categories", "Sales by category", len(view.CategoryTotals) == 0},
		{"customers", "New customers per day", len(view.Customers) == 0},
		{"satisfaction", "Customer satisfaction over time", len(view.Customers) == 0},
		{"products", "Top products: sales vs rating", len(view.Products) == 0},
	}
	for _, c := range charts {
		data.Charts = append(data.Charts, chartLink{
			Title: c.title,
			URL:   "/api/v1/charts/" + c.name + ".png?" + query,
			Empty: c.empty,
		})
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to render dashboard page")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to write dashboard page")
	}
}
