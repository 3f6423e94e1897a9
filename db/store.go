package db

import (
	"context"
	"errors"
)

// Every failure returned by this package wraps exactly one of these.
var (
	ErrConnect = errors.New("database connection failed")
	ErrSchema  = errors.New("schema initialization failed")
	ErrInsert  = errors.New("seed insert failed")
	ErrQuery   = errors.New("catalog query failed")
)

// Store reads the database catalog and samples table contents.
type Store interface {
	Ping(ctx context.Context) error
	ListTables() ([]string, error)
	ListColumns(table string) ([]string, error)
	SampleRows(table string, limit int) (columns []string, rows [][]any, err error)
}
