package api

const DateLayout = "2006-01-02"

type DailySale struct {
	Date     string `json:"date"`
	Amount   int    `json:"amount"`
	Category string `json:"category"`
}

type DailyCustomer struct {
	Date         string  `json:"date"`
	NewCustomers int     `json:"new_customers"`
	Satisfaction float64 `json:"satisfaction"`
}

type Product struct {
	Product    string  `json:"product"`
	TotalSales int     `json:"total_sales"`
	Rating     float64 `json:"rating"`
	Category   string  `json:"category"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Value    int     `json:"value"`
	Share    float64 `json:"share"`
}

type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Summary struct {
	Selection       []string `json:"selection"`
	TotalSales      string   `json:"total_sales"`
	NewCustomers    int      `json:"new_customers"`
	AvgSatisfaction *float64 `json:"avg_satisfaction"`
	KPIs            []KPI    `json:"kpis"`
}

type Insights struct {
	TopCategory        string   `json:"top_category,omitempty"`
	WeakestCategory    string   `json:"weakest_category,omitempty"`
	BestSellingProduct string   `json:"best_selling_product,omitempty"`
	TopRatedProduct    string   `json:"top_rated_product,omitempty"`
	TopRating          *float64 `json:"top_rating,omitempty"`
	Conclusions        []string `json:"conclusions"`
	Recommendations    []string `json:"recommendations"`
}

type Page[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
