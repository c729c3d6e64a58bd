package domain

import "time"

// Dataset bundles the base tables of the dashboard. It is built once per
// process and must be treated as read-only by every consumer.
type Dataset struct {
	Seed      int64
	Sales     []DailySale
	Customers []DailyCustomer
	Products  []ProductStat
}

// Period returns the first and last day covered by the daily sales table.
func (d *Dataset) Period() TimePeriod {
	if d == nil || len(d.Sales) == 0 {
		return TimePeriod{}
	}
	start := d.Sales[0].Date
	end := d.Sales[len(d.Sales)-1].Date
	return TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start)/(24*time.Hour)) + 1,
	}
}
