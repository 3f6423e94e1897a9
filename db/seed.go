package db

import (
	"fmt"

	"bookseed/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCount records how many rows of a table one Seed call actually inserted.
type SeedCount struct {
	Table    string
	Offered  int
	Inserted int64
}

// Seed inserts the fixed seed rows. Rows whose key already exists are skipped
// (ON CONFLICT DO NOTHING), so repeated runs neither fail nor duplicate data.
// Tables are filled in dependency order; the first failure stops the run and
// the counts gathered so far are returned with it.
func Seed(db *gorm.DB) ([]SeedCount, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: no database connection", ErrInsert)
	}

	counts := make([]SeedCount, 0, len(schema))
	steps := []func() (SeedCount, error){
		func() (SeedCount, error) { return insertAll(db, "publishers", model.SeedPublishers()) },
		func() (SeedCount, error) { return insertAll(db, "authors", model.SeedAuthors()) },
		func() (SeedCount, error) { return insertAll(db, "books", model.SeedBooks()) },
		func() (SeedCount, error) { return insertAll(db, "book_authors", model.SeedBookAuthors()) },
	}
	for _, step := range steps {
		c, err := step()
		if err != nil {
			return counts, err
		}
		counts = append(counts, c)
	}
	return counts, nil
}

func insertAll[T any](db *gorm.DB, table string, rows []T) (SeedCount, error) {
	res := skipConflicts(db).Create(&rows)
	if res.Error != nil {
		return SeedCount{}, fmt.Errorf("%w: inserting into %s: %w", ErrInsert, table, res.Error)
	}
	return SeedCount{Table: table, Offered: len(rows), Inserted: res.RowsAffected}, nil
}

// skipConflicts returns a fresh statement that ignores key conflicts.
func skipConflicts(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.OnConflict{DoNothing: true})
}
