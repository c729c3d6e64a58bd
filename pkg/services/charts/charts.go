package charts

import (
	"io"
	"time"

	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/format"
	"github.com/de-tools/sales-atlas/pkg/services/metrics"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	defaultWidth  = 1024
	defaultHeight = 400
	barWidth      = 2
	barSpacing    = 1
	minDotWidth   = 6
	maxDotWidth   = 26
)

func timeSeriesChart(title, yName string, xs []time.Time, ys []float64) chart.Chart {
	return chart.Chart{
		Title:  title,
		Width:  defaultWidth,
		Height: defaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan"),
		},
		YAxis: chart.YAxis{Name: yName},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    yName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 1.5,
				},
			},
		},
	}
}

func SalesOverTime(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error {
	if len(view.Sales) == 0 {
		return metrics.ErrEmptyInput
	}
	xs := make([]time.Time, len(view.Sales))
	ys := make([]float64, len(view.Sales))
	for i, s := range view.Sales {
		xs[i] = s.Date
		ys[i] = float64(s.Amount)
	}
	graph := timeSeriesChart("Sales over time", "Sales", xs, ys)
	return graph.Render(rp, w)
}

func SalesByCategory(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error {
	if len(view.CategoryTotals) == 0 {
		return metrics.ErrEmptyInput
	}
	values := make([]chart.Value, len(view.CategoryTotals))
	for i, ct := range view.CategoryTotals {
		values[i] = chart.Value{
			Value: float64(ct.Total),
			Label: string(ct.Category) + " " + format.Percent(ct.Share),
		}
	}
	pie := chart.PieChart{
		Title:  "Sales by category",
		Width:  defaultHeight + 112,
		Height: defaultHeight + 112,
		Values: values,
	}
	return pie.Render(rp, w)
}

func NewCustomersPerDay(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error {
	if len(view.Customers) == 0 {
		return metrics.ErrEmptyInput
	}
	bars := make([]chart.Value, len(view.Customers))
	for i, c := range view.Customers {
		label := ""
		if c.Date.Day() == 1 {
			label = c.Date.Format("Jan")
		}
		bars[i] = chart.Value{Value: float64(c.NewCustomers), Label: label}
	}
	bc := chart.BarChart{
		Title:      "New customers per day",
		Width:      len(bars)*(barWidth+barSpacing) + 160,
		Height:     defaultHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	return bc.Render(rp, w)
}

func SatisfactionOverTime(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error {
	if len(view.Customers) == 0 {
		return metrics.ErrEmptyInput
	}
	xs := make([]time.Time, len(view.Customers))
	ys := make([]float64, len(view.Customers))
	for i, c := range view.Customers {
		xs[i] = c.Date
		ys[i] = c.Satisfaction
	}
	graph := timeSeriesChart("Customer satisfaction over time", "Satisfaction", xs, ys)
	return graph.Render(rp, w)
}

// TopProducts plots sales against rating, one labelled dot per product sized
// by its sales.
func TopProducts(rp chart.RendererProvider, w io.Writer, view *dashboard.View) error {
	if len(view.Products) == 0 {
		return metrics.ErrEmptyInput
	}

	minSales, maxSales := float64(view.Products[0].TotalSales), float64(view.Products[0].TotalSales)
	minRating, maxRating := view.Products[0].Rating, view.Products[0].Rating
	for _, p := range view.Products[1:] {
		minSales = min(minSales, float64(p.TotalSales))
		maxSales = max(maxSales, float64(p.TotalSales))
		minRating = min(minRating, p.Rating)
		maxRating = max(maxRating, p.Rating)
	}

	series := make([]chart.Series, 0, len(view.Products)+1)
	labels := chart.AnnotationSeries{}
	for i, p := range view.Products {
		x, y := float64(p.TotalSales), p.Rating
		series = append(series, chart.ContinuousSeries{
			Name: p.Product,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dotWidth(x, maxSales),
				DotColor:    chart.GetDefaultColor(i),
			},
			XValues: []float64{x},
			YValues: []float64{y},
		})
		labels.Annotations = append(labels.Annotations, chart.Value2{XValue: x, YValue: y, Label: p.Product})
	}
	series = append(series, labels)

	// Explicit ranges keep a single product from collapsing an axis.
	salesPad := max((maxSales-minSales)*0.15, maxSales*0.1)
	graph := chart.Chart{
		Title:  "Top products: sales vs rating",
		Width:  defaultWidth,
		Height: defaultHeight + 112,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Sales",
			Range: &chart.ContinuousRange{Min: minSales - salesPad, Max: maxSales + salesPad},
		},
		YAxis: chart.YAxis{
			Name:  "Rating",
			Range: &chart.ContinuousRange{Min: minRating - 0.2, Max: maxRating + 0.2},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(rp, w)
}

func dotWidth(sales, maxSales float64) float64 {
	if maxSales <= 0 {
		return minDotWidth
	}
	return minDotWidth + (maxDotWidth-minDotWidth)*sales/maxSales
}
