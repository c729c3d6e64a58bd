package domain

import "time"

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBook        Category = "Book"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
)

var categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBook,
	CategoryHome,
	CategorySports,
}

// AllCategories returns the known categories in their canonical order.
func AllCategories() []Category {
	return append([]Category(nil), categories...)
}

// IsKnown reports whether c belongs to the fixed category enumeration.
func (c Category) IsKnown() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Categorized is implemented by every record that can be filtered by category.
type Categorized interface {
	GetCategory() Category
}

// DailySale is the sales amount booked on a single calendar day
type DailySale struct {
	Date     time.Time
	Amount   int
	Category Category
}

func (s DailySale) GetCategory() Category { return s.Category }

// DailyCustomer holds the customer stats for a single calendar day
type DailyCustomer struct {
	Date         time.Time
	NewCustomers int
	// Satisfaction is drawn from [5.0, 13.5) and is intentionally not clamped
	// to a bounded rating scale.
	Satisfaction float64
}

type ProductStat struct {
	Product    string
	TotalSales int
	Rating     float64
	Category   Category
}

func (p ProductStat) GetCategory() Category { return p.Category }

type CategoryTotal struct {
	Category Category
	Total    int
}
