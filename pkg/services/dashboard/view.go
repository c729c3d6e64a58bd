package dashboard

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/format"
	"github.com/de-tools/sales-atlas/pkg/services/metrics"
	"github.com/shopspring/decimal"
)

// View is the set of derived tables and aggregates for one selection.
// Customers are never filtered: they carry no category.
type View struct {
	Title     string
	Currency  string
	Period    domain.TimePeriod
	Selection []domain.Category

	Sales     []domain.DailySale
	Customers []domain.DailyCustomer
	Products  []domain.ProductStat

	Summary        Summary
	CategoryTotals []CategoryShare
	Insights       Insights
}

type Summary struct {
	TotalSales      decimal.Decimal
	NewCustomers    int
	AvgSatisfaction float64
	HasSatisfaction bool
}

type CategoryShare struct {
	Category domain.Category
	Total    int
	// Share is the percentage (0..100) of the filtered total.
	Share float64
}

// Insights hold the highlights of the conclusions section. Each field is left
// empty when its input is empty for the current selection.
type Insights struct {
	TopCategory        domain.Category
	WeakestCategory    domain.Category
	BestSellingProduct string
	TopRatedProduct    string
	TopRating          float64
}

type KPI struct {
	Label string
	Value string
}

func saleAmount(s domain.DailySale) int               { return s.Amount }
func saleCategory(s domain.DailySale) domain.Category { return s.Category }
func newCustomers(c domain.DailyCustomer) int         { return c.NewCustomers }
func satisfaction(c domain.DailyCustomer) float64     { return c.Satisfaction }
func productSales(p domain.ProductStat) int           { return p.TotalSales }
func productRating(p domain.ProductStat) float64      { return p.Rating }

func buildView(ds *domain.Dataset, sel filter.Selection, opts Options) *View {
	sales := filter.ByCategory(ds.Sales, sel)
	products := filter.ByCategory(ds.Products, sel)

	v := &View{
		Title:     opts.Title,
		Currency:  opts.Currency,
		Period:    ds.Period(),
		Selection: sel.Labels(),
		Sales:     sales,
		Customers: ds.Customers,
		Products:  products,
	}

	total := metrics.Total(sales, saleAmount)
	v.Summary.TotalSales = decimal.NewFromInt(int64(total))
	v.Summary.NewCustomers = metrics.Total(ds.Customers, newCustomers)
	if mean, err := metrics.Mean(ds.Customers, satisfaction); err == nil {
		v.Summary.AvgSatisfaction = mean
		v.Summary.HasSatisfaction = true
	}

	groups := metrics.GroupSum(sales, saleCategory, saleAmount)
	for _, g := range metrics.SortedGroups(groups) {
		share := 0.0
		if total > 0 {
			share = float64(g.Value) / float64(total) * 100
		}
		v.CategoryTotals = append(v.CategoryTotals, CategoryShare{Category: g.Key, Total: g.Value, Share: share})
	}

	if top, err := metrics.ArgMaxGroup(groups); err == nil {
		v.Insights.TopCategory = top
	}
	if weakest, err := metrics.ArgMinGroup(groups); err == nil {
		v.Insights.WeakestCategory = weakest
	}
	if best, err := metrics.TopBy(products, productSales, 1); err == nil {
		v.Insights.BestSellingProduct = best[0].Product
	}
	if rated, err := metrics.TopBy(products, productRating, 1); err == nil {
		v.Insights.TopRatedProduct = rated[0].Product
		v.Insights.TopRating = rated[0].Rating
	}

	return v
}

// IsEmpty reports whether the selection matched no sales at all.
func (v *View) IsEmpty() bool {
	return len(v.Sales) == 0
}

func (v *View) FormattedTotal() string {
	return format.Currency(v.Currency, v.Summary.TotalSales)
}

func (v *View) FormattedSatisfaction() string {
	if !v.Summary.HasSatisfaction {
		return format.Placeholder
	}
	return format.Float(v.Summary.AvgSatisfaction, 2)
}

func (v *View) KPIs() []KPI {
	return []KPI{
		{Label: "Total Sales", Value: v.FormattedTotal()},
		{Label: "New Customers", Value: format.Number(v.Summary.NewCustomers)},
		{Label: "Average Satisfaction", Value: v.FormattedSatisfaction()},
	}
}

func (v *View) Conclusions() []string {
	rating := format.Placeholder
	if v.Insights.TopRatedProduct != "" {
		rating = format.Float(v.Insights.TopRating, 1)
	}
	return []string{
		fmt.Sprintf("Total sales for the period reached %s, led by the %s category.",
			v.FormattedTotal(), orPlaceholder(string(v.Insights.TopCategory))),
		fmt.Sprintf("New customers totalled %s, indicating healthy growth of the customer base.",
			format.Number(v.Summary.NewCustomers)),
		fmt.Sprintf("Average customer satisfaction stayed at %s, suggesting a positive experience for most customers.",
			v.FormattedSatisfaction()),
		fmt.Sprintf("The best selling product was %s, while the best rated was %s with an average rating of %s.",
			orPlaceholder(v.Insights.BestSellingProduct), orPlaceholder(v.Insights.TopRatedProduct), rating),
	}
}

func (v *View) Recommendations() []string {
	return []string{
		"Invest more in marketing for the categories with the highest sales return.",
		fmt.Sprintf("Review underperforming categories (such as %s) to rethink the product mix or pricing.",
			orPlaceholder(string(v.Insights.WeakestCategory))),
		"Monitor customer satisfaction and collect more specific feedback to keep or improve current levels.",
		"Focus on well rated products since they are more likely to drive loyalty and word of mouth.",
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}
