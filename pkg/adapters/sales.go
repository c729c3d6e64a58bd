package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
)

func MapDailySalesDomainToApi(rows []domain.DailySale) []api.DailySale {
	out := make([]api.DailySale, len(rows))
	for i, r := range rows {
		out[i] = api.DailySale{
			Date:     r.Date.Format(api.DateLayout),
			Amount:   r.Amount,
			Category: string(r.Category),
		}
	}
	return out
}

func MapDailyCustomersDomainToApi(rows []domain.DailyCustomer) []api.DailyCustomer {
	out := make([]api.DailyCustomer, len(rows))
	for i, r := range rows {
		out[i] = api.DailyCustomer{
			Date:         r.Date.Format(api.DateLayout),
			NewCustomers: r.NewCustomers,
			Satisfaction: r.Satisfaction,
		}
	}
	return out
}

func MapProductsDomainToApi(rows []domain.ProductStat) []api.Product {
	out := make([]api.Product, len(rows))
	for i, r := range rows {
		out[i] = api.Product{
			Product:    r.Product,
			TotalSales: r.TotalSales,
			Rating:     r.Rating,
			Category:   string(r.Category),
		}
	}
	return out
}

func MapCategoryTotalsToApi(totals []dashboard.CategoryShare) []api.CategoryValue {
	out := make([]api.CategoryValue, len(totals))
	for i, t := range totals {
		out[i] = api.CategoryValue{
			Category: string(t.Category),
			Value:    t.Total,
			Share:    t.Share,
		}
	}
	return out
}

func MapCategoriesToApi(categories []domain.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func MapSummaryToApi(view *dashboard.View) api.Summary {
	summary := api.Summary{
		Selection:    MapCategoriesToApi(view.Selection),
		TotalSales:   view.Summary.TotalSales.StringFixed(2),
		NewCustomers: view.Summary.NewCustomers,
		KPIs:         []api.KPI{},
	}
	if view.Summary.HasSatisfaction {
		avg := view.Summary.AvgSatisfaction
		summary.AvgSatisfaction = &avg
	}
	for _, kpi := range view.KPIs() {
		summary.KPIs = append(summary.KPIs, api.KPI{Label: kpi.Label, Value: kpi.Value})
	}
	return summary
}

func MapInsightsToApi(view *dashboard.View) api.Insights {
	insights := api.Insights{
		TopCategory:        string(view.Insights.TopCategory),
		WeakestCategory:    string(view.Insights.WeakestCategory),
		BestSellingProduct: view.Insights.BestSellingProduct,
		TopRatedProduct:    view.Insights.TopRatedProduct,
		Conclusions:        view.Conclusions(),
		Recommendations:    view.Recommendations(),
	}
	if view.Insights.TopRatedProduct != "" {
		rating := view.Insights.TopRating
		insights.TopRating = &rating
	}
	return insights
}
