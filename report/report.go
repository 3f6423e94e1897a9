// Package report renders an inspection report as plain console text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"bookseed/db"
)

const separator = "----------------------------------------"

var cellEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Write prints the table list, then for each table its columns and sampled
// rows, aligned in columns.
func Write(w io.Writer, r *db.Report) error {
	if r == nil {
		r = &db.Report{}
	}
	if _, err := fmt.Fprintf(w, "Tables (%d):\n", len(r.Tables)); err != nil {
		return err
	}
	for _, t := range r.Tables {
		if _, err := fmt.Fprintf(w, "  %s\n", t.Name); err != nil {
			return err
		}
	}
	for _, t := range r.Tables {
		if err := writeTable(w, t); err != nil {
			return fmt.Errorf("report: writing %s: %w", t.Name, err)
		}
	}
	return nil
}

func writeTable(w io.Writer, t db.TableReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nColumns of table %s:\n", t.Name)
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	fmt.Fprintf(&b, "First %d rows of table %s:\n", db.RowLimit, t.Name)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(t.Rows) == 0 {
		if _, err := io.WriteString(w, "(no rows)\n"); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.DataColumns, "\t"))
		for _, row := range t.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = cellEscaper.Replace(FormatValue(v))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", separator)
	return err
}

// FormatValue renders a scanned column value. NULL prints as NULL and dates
// without a time of day print as YYYY-MM-DD.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
