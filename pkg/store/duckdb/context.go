package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// Conn is the subset shared by *sql.DB and *sql.Tx that stores run statements on.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// ConnFromContext returns the transaction carried by ctx, or db when there is none.
func ConnFromContext(ctx context.Context, db *sql.DB) Conn {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return db
}
