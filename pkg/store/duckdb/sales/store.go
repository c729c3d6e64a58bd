package sales

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
)

// Store exposes the dashboard tables to SQL. Load replaces the whole content.
type Store interface {
	Load(ctx context.Context, dataset *domain.Dataset) error
	CategoryTotals(ctx context.Context, categories []domain.Category) ([]domain.CategoryTotal, error)
	Query(ctx context.Context, query string, args ...interface{}) (*store.ResultSet, error)
}

type salesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &salesStore{db: db}, nil
}

func (s *salesStore) Load(ctx context.Context, dataset *domain.Dataset) (err error) {
	if dataset == nil {
		return fmt.Errorf("dataset is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	ctx = duckdb.WithTransaction(ctx, tx)

	for _, table := range []string{"daily_sales", "daily_customers", "product_stats"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	if err = s.addSales(ctx, dataset.Sales); err != nil {
		return err
	}
	if err = s.addCustomers(ctx, dataset.Customers); err != nil {
		return err
	}
	if err = s.addProducts(ctx, dataset.Products); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *salesStore) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := duckdb.ConnFromContext(ctx, s.db).PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	return stmt, nil
}

func (s *salesStore) addSales(ctx context.Context, rows []domain.DailySale) error {
	stmt, err := s.prepare(ctx, `INSERT INTO daily_sales (day, amount, category) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Date, r.Amount, string(r.Category)); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	return nil
}

func (s *salesStore) addCustomers(ctx context.Context, rows []domain.DailyCustomer) error {
	stmt, err := s.prepare(ctx, `INSERT INTO daily_customers (day, new_customers, satisfaction) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Date, r.NewCustomers, r.Satisfaction); err != nil {
			return fmt.Errorf("insert customer stats: %w", err)
		}
	}
	return nil
}

func (s *salesStore) addProducts(ctx context.Context, rows []domain.ProductStat) error {
	stmt, err := s.prepare(ctx, `INSERT INTO product_stats (product, total_sales, rating, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Product, r.TotalSales, r.Rating, string(r.Category)); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
	}
	return nil
}

func (s *salesStore) CategoryTotals(ctx context.Context, categories []domain.Category) ([]domain.CategoryTotal, error) {
	if len(categories) == 0 {
		return []domain.CategoryTotal{}, nil
	}

	placeholders := make([]string, len(categories))
	args := make([]interface{}, len(categories))
	for i, c := range categories {
		placeholders[i] = "?"
		args[i] = string(c)
	}

	query := fmt.Sprintf(`
		SELECT category, CAST(SUM(amount) AS BIGINT) AS total
		FROM daily_sales
		WHERE category IN (%s)
		GROUP BY category
		ORDER BY category`, strings.Join(placeholders, ","))

	rows, err := duckdb.ConnFromContext(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		var (
			category string
			total    int64
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, domain.CategoryTotal{Category: domain.Category(category), Total: int(total)})
	}
	return totals, rows.Err()
}

func (s *salesStore) Query(ctx context.Context, query string, args ...interface{}) (*store.ResultSet, error) {
	rows, err := duckdb.ConnFromContext(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &store.ResultSet{Columns: columns, Rows: make([][]interface{}, 0)}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}
