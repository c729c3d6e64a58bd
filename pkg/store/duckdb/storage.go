package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"
)

const DailySalesSchema = `
	CREATE TABLE IF NOT EXISTS daily_sales (
		day DATE NOT NULL,
		amount INTEGER NOT NULL,
		category VARCHAR NOT NULL
	);
`

const DailyCustomersSchema = `
	CREATE TABLE IF NOT EXISTS daily_customers (
		day DATE NOT NULL,
		new_customers INTEGER NOT NULL,
		satisfaction DOUBLE NOT NULL
	);
`

const ProductStatsSchema = `
	CREATE TABLE IF NOT EXISTS product_stats (
		product VARCHAR NOT NULL,
		total_sales INTEGER NOT NULL,
		rating DOUBLE NOT NULL,
		category VARCHAR NOT NULL
	);
`

var bootQueries = []string{
	DailySalesSchema,
	DailyCustomersSchema,
	ProductStatsSchema,
}

type Settings struct {
	// DbPath is left empty for an in-memory database
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
