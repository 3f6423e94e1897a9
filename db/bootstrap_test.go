package db

import (
	"testing"

	"bookseed/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	t.Run("creates the four tables with their columns", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Bootstrap(db))

		store := NewSQLStore(db)
		tables, err := store.ListTables()
		require.NoError(t, err)
		assert.Equal(t, []string{"authors", "book_authors", "books", "publishers"}, tables)

		want := map[string][]string{
			"publishers":   {"publisher_id", "name"},
			"authors":      {"author_id", "first_name", "middle_name", "last_name"},
			"books":        {"book_id", "title", "total_pages", "rating", "isbn", "published_date", "publisher_id"},
			"book_authors": {"book_id", "author_id"},
		}
		for table, columns := range want {
			got, err := store.ListColumns(table)
			require.NoError(t, err)
			assert.Equal(t, columns, got, table)
		}
	})

	t.Run("running twice keeps schema and data", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Bootstrap(db))
		require.NoError(t, db.Create(&model.Publisher{PublisherID: 7, Name: "No Starch Press"}).Error)

		require.NoError(t, Bootstrap(db))

		tables, err := NewSQLStore(db).ListTables()
		require.NoError(t, err)
		assert.Len(t, tables, 4)
		assert.Equal(t, int64(1), count(t, db, "publishers"))
	})

	t.Run("primary keys are unique", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Bootstrap(db))
		require.NoError(t, db.Create(&model.Author{AuthorID: 1, FirstName: "Ethan"}).Error)
		assert.Error(t, db.Create(&model.Author{AuthorID: 1, FirstName: "Jeremy"}).Error)
		assert.Error(t, db.Exec("INSERT INTO book_authors (book_id, author_id) VALUES (1, 1), (1, 1)").Error)
	})

	t.Run("books must reference an existing publisher or none", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Bootstrap(db))

		assert.NoError(t, db.Exec("INSERT INTO books (book_id, title, publisher_id) VALUES (1, 'Orphan', NULL)").Error)
		assert.Error(t, db.Exec("INSERT INTO books (book_id, title, publisher_id) VALUES (2, 'Dangling', 99)").Error)
	})

	t.Run("deleting a book or author cascades to its links", func(t *testing.T) {
		db := setupSeededDB(t)
		require.Equal(t, int64(4), count(t, db, "book_authors"))

		require.NoError(t, db.Exec("DELETE FROM books WHERE book_id = ?", 3).Error)
		assert.Equal(t, int64(2), count(t, db, "book_authors"))

		require.NoError(t, db.Exec("DELETE FROM authors WHERE author_id = ?", 1).Error)
		assert.Equal(t, int64(1), count(t, db, "book_authors"))
	})

	t.Run("publishers referenced by books cannot be deleted", func(t *testing.T) {
		db := setupSeededDB(t)
		assert.Error(t, db.Exec("DELETE FROM publishers WHERE publisher_id = ?", 2).Error)
		assert.Equal(t, int64(2), count(t, db, "publishers"))
	})

	t.Run("closed connection reports a schema error", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Close(db))

		err := Bootstrap(db)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchema)
		assert.Contains(t, err.Error(), "publishers")
	})

	t.Run("no connection reports a schema error", func(t *testing.T) {
		assert.ErrorIs(t, Bootstrap(nil), ErrSchema)
	})
}

func TestBootstrapForeignKeys(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Bootstrap(db))

	type foreignKey struct {
		Table    string
		From     string
		To       string
		OnDelete string
	}
	tests := []struct {
		table       string
		constraints []string
		want        []foreignKey
	}{
		{
			table:       "publishers",
			constraints: nil,
			want:        nil,
		},
		{
			table:       "authors",
			constraints: nil,
			want:        nil,
		},
		{
			table:       "books",
			constraints: []string{"CONSTRAINT fk_publisher"},
			want: []foreignKey{
				{Table: "publishers", From: "publisher_id", To: "publisher_id", OnDelete: "NO ACTION"},
			},
		},
		{
			table:       "book_authors",
			constraints: []string{"CONSTRAINT fk_book", "CONSTRAINT fk_author"},
			want: []foreignKey{
				{Table: "books", From: "book_id", To: "book_id", OnDelete: "CASCADE"},
				{Table: "authors", From: "author_id", To: "author_id", OnDelete: "CASCADE"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			var got []foreignKey
			require.NoError(t, db.Raw(
				`SELECT "table", "from", "to", on_delete FROM pragma_foreign_key_list(?)`, tt.table,
			).Scan(&got).Error)
			assert.ElementsMatch(t, tt.want, got)

			var ddl string
			require.NoError(t, db.Raw(
				"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", tt.table,
			).Scan(&ddl).Error)
			for _, c := range tt.constraints {
				assert.Contains(t, ddl, c)
			}
		})
	}
}

func TestTables(t *testing.T) {
	assert.Equal(t, []string{"publishers", "authors", "books", "book_authors"}, Tables())
}
