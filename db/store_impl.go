package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ready() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sql store is not initialized")
	}
	return nil
}

// Ping verifies the underlying database connection is healthy.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// catalogQueries holds, per dialect, the statements listing user tables
// (views included) and the columns of one table. Table names are always
// bound as parameters.
var catalogQueries = map[string]struct{ tables, columns string }{
	"postgres": {
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = CURRENT_SCHEMA()`,
		columns: `SELECT column_name FROM information_schema.columns
			WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?
			ORDER BY ordinal_position`,
	},
	"sqlite": {
		tables: `SELECT name FROM sqlite_master
			WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite\_%' ESCAPE '\'`,
		columns: `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
	},
}

func (s *SQLStore) catalog() (struct{ tables, columns string }, error) {
	name := s.db.Dialector.Name()
	q, ok := catalogQueries[name]
	if !ok {
		return q, fmt.Errorf("no catalog queries for dialect %q", name)
	}
	return q, nil
}

// ListTables returns the tables and views of the current schema, sorted by
// name. Postgres answers from information_schema.tables, SQLite from
// sqlite_master; SQLite's own bookkeeping tables are skipped.
func (s *SQLStore) ListTables() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, err := s.catalog()
	if err != nil {
		return nil, err
	}
	var tables []string
	if err := s.db.Raw(q.tables).Scan(&tables).Error; err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}

// ListColumns returns the column names of table in declaration order.
func (s *SQLStore) ListColumns(table string) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, err := s.catalog()
	if err != nil {
		return nil, err
	}
	var columns []string
	if err := s.db.Raw(q.columns, table).Scan(&columns).Error; err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q does not exist", table)
	}
	return columns, nil
}

// SampleRows returns at most limit rows of table together with the column
// names of the result set. The table name is quoted as a single identifier,
// so spaces, dots and quotes in it are kept literally. Text held as []byte by
// the driver is returned as string.
func (s *SQLStore) SampleRows(table string, limit int) ([]string, [][]any, error) {
	if err := s.ready(); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		return nil, nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.db.Raw("SELECT * FROM "+pq.QuoteIdentifier(table)+" LIMIT ?", limit).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	return columns, result, rows.Err()
}
