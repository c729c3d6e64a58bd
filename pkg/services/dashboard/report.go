package dashboard

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/format"
)

// Report converts the view into the presentation-neutral report used by the
// terminal reporters.
func (v *View) Report() *domain.Report {
	selection := make([]string, len(v.Selection))
	for i, c := range v.Selection {
		selection[i] = string(c)
	}

	metricsSection := domain.ReportSection{Title: "Key metrics"}
	for _, kpi := range v.KPIs() {
		metricsSection.Details = append(metricsSection.Details, domain.ReportDetail{
			Name:  kpi.Label,
			Value: kpi.Value,
		})
	}

	categorySection := domain.ReportSection{
		Title: "Sales by category",
		Summary: map[string]string{
			"Top category":     orPlaceholder(string(v.Insights.TopCategory)),
			"Weakest category": orPlaceholder(string(v.Insights.WeakestCategory)),
		},
	}
	for _, ct := range v.CategoryTotals {
		categorySection.Details = append(categorySection.Details, domain.ReportDetail{
			Name:        string(ct.Category),
			Value:       format.Number(ct.Total),
			Unit:        v.Currency,
			Description: format.Percent(ct.Share) + " of filtered sales",
		})
	}

	productSection := domain.ReportSection{Title: "Products"}
	for _, p := range v.Products {
		productSection.Details = append(productSection.Details, domain.ReportDetail{
			Name:        p.Product,
			Value:       format.Number(p.TotalSales),
			Unit:        v.Currency,
			Description: "rating " + format.Float(p.Rating, 1) + ", " + string(p.Category),
		})
	}

	conclusions := domain.ReportSection{Title: "Conclusions"}
	for i, c := range v.Conclusions() {
		conclusions.Details = append(conclusions.Details, domain.ReportDetail{
			Name:  "Conclusion " + format.Number(i+1),
			Value: c,
		})
	}
	for i, r := range v.Recommendations() {
		conclusions.Details = append(conclusions.Details, domain.ReportDetail{
			Name:  "Recommendation " + format.Number(i+1),
			Value: r,
		})
	}

	return &domain.Report{
		Title:     v.Title,
		Period:    v.Period,
		Selection: selection,
		Sections:  []domain.ReportSection{metricsSection, categorySection, productSection, conclusions},
		Total:     v.FormattedTotal(),
		Currency:  v.Currency,
	}
}
