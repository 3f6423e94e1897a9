package db

import (
	"fmt"
)

// RowLimit caps the number of rows Inspect samples from each table.
const RowLimit = 5

// TableReport is what Inspect learned about one table.
type TableReport struct {
	Name string
	// Columns as listed by the catalog.
	Columns []string
	// DataColumns names the values of each entry of Rows.
	DataColumns []string
	Rows        [][]any
}

type Report struct {
	Tables []TableReport
}

// Names returns the inspected table names in report order.
func (r *Report) Names() []string {
	names := make([]string, len(r.Tables))
	for i, t := range r.Tables {
		names[i] = t.Name
	}
	return names
}

// Inspect lists every user table with its columns and up to RowLimit rows.
// The report is never nil; when a query fails it holds the tables completed
// before the failure and the error wraps ErrQuery.
func Inspect(store Store) (*Report, error) {
	report := &Report{}
	if store == nil {
		return report, fmt.Errorf("%w: no store", ErrQuery)
	}

	tables, err := store.ListTables()
	if err != nil {
		return report, fmt.Errorf("%w: listing tables: %w", ErrQuery, err)
	}

	for _, table := range tables {
		columns, err := store.ListColumns(table)
		if err != nil {
			return report, fmt.Errorf("%w: listing columns of %s: %w", ErrQuery, table, err)
		}
		dataColumns, rows, err := store.SampleRows(table, RowLimit)
		if err != nil {
			return report, fmt.Errorf("%w: reading rows of %s: %w", ErrQuery, table, err)
		}
		if len(rows) > RowLimit {
			rows = rows[:RowLimit]
		}
		report.Tables = append(report.Tables, TableReport{
			Name:        table,
			Columns:     columns,
			DataColumns: dataColumns,
			Rows:        rows,
		})
	}
	return report, nil
}
