package datagen

import (
	"math/rand/v2"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	DefaultSeed int64 = 42

	minAmount       = 1000
	maxAmount       = 5000
	minNewCustomers = 10
	maxNewCustomers = 100
	minSatisfaction = 5.0
	maxSatisfaction = 13.5
)

var (
	rangeStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Reference product data
var products = []domain.ProductStat{
	{Product: "Smartphone", TotalSales: 15000, Rating: 4.5, Category: domain.CategoryElectronics},
	{Product: "Notebook", TotalSales: 12000, Rating: 4.3, Category: domain.CategoryElectronics},
	{Product: "Sneaker", TotalSales: 9000, Rating: 4.2, Category: domain.CategorySports},
	{Product: "Book", TotalSales: 7500, Rating: 4.7, Category: domain.CategoryBook},
	{Product: "T-shirt", TotalSales: 6000, Rating: 4.1, Category: domain.CategoryClothing},
}

// Generator builds the synthetic dataset from a single seeded stream.
type Generator struct {
	seed int64
}

func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate produces the three base tables. The random stream is consumed in a
// fixed order: sales amounts, sales categories, new customer counts and
// satisfaction values. Changing that order changes every generated value.
func (g *Generator) Generate() *domain.Dataset {
	rng := rand.New(rand.NewPCG(uint64(g.seed), uint64(g.seed)))
	days := Days()
	n := len(days)

	amounts := make([]int, n)
	for i := range amounts {
		amounts[i] = minAmount + rng.IntN(maxAmount-minAmount)
	}

	cats := domain.AllCategories()
	saleCats := make([]domain.Category, n)
	for i := range saleCats {
		saleCats[i] = cats[rng.IntN(len(cats))]
	}

	newCustomers := make([]int, n)
	for i := range newCustomers {
		newCustomers[i] = minNewCustomers + rng.IntN(maxNewCustomers-minNewCustomers)
	}

	satisfaction := make([]float64, n)
	for i := range satisfaction {
		satisfaction[i] = minSatisfaction + rng.Float64()*(maxSatisfaction-minSatisfaction)
	}

	ds := &domain.Dataset{
		Seed:      g.seed,
		Sales:     make([]domain.DailySale, n),
		Customers: make([]domain.DailyCustomer, n),
		Products:  Products(),
	}
	for i, day := range days {
		ds.Sales[i] = domain.DailySale{Date: day, Amount: amounts[i], Category: saleCats[i]}
		ds.Customers[i] = domain.DailyCustomer{Date: day, NewCustomers: newCustomers[i], Satisfaction: satisfaction[i]}
	}
	return ds
}

// Days returns every calendar day of the covered range, ascending.
func Days() []time.Time {
	var days []time.Time
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Products returns a fresh copy of the fixed product table.
func Products() []domain.ProductStat {
	return append([]domain.ProductStat(nil), products...)
}
