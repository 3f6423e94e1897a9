package db

import (
	"fmt"

	"gorm.io/gorm"
)

// schema lists the tables in creation order; referenced tables come first.
// The statements are plain DDL understood by both PostgreSQL and SQLite, so
// the named constraints exist on either dialect.
var schema = []struct {
	table string
	ddl   string
}{
	{"publishers", `CREATE TABLE IF NOT EXISTS publishers (
		publisher_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		PRIMARY KEY (publisher_id)
	)`},
	{"authors", `CREATE TABLE IF NOT EXISTS authors (
		author_id INT NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		middle_name VARCHAR(50),
		last_name VARCHAR(100),
		PRIMARY KEY (author_id)
	)`},
	{"books", `CREATE TABLE IF NOT EXISTS books (
		book_id INT NOT NULL,
		title VARCHAR(255) NOT NULL,
		total_pages INT,
		rating DECIMAL(4, 2),
		isbn VARCHAR(13),
		published_date DATE,
		publisher_id INT,
		PRIMARY KEY (book_id),
		CONSTRAINT fk_publisher FOREIGN KEY (publisher_id)
			REFERENCES publishers (publisher_id)
	)`},
	{"book_authors", `CREATE TABLE IF NOT EXISTS book_authors (
		book_id INT NOT NULL,
		author_id INT NOT NULL,
		PRIMARY KEY (book_id, author_id),
		CONSTRAINT fk_book FOREIGN KEY (book_id)
			REFERENCES books (book_id) ON DELETE CASCADE,
		CONSTRAINT fk_author FOREIGN KEY (author_id)
			REFERENCES authors (author_id) ON DELETE CASCADE
	)`},
}

// Tables returns the names of the tables Bootstrap creates, in creation order.
func Tables() []string {
	names := make([]string, len(schema))
	for i, s := range schema {
		names[i] = s.table
	}
	return names
}

// Bootstrap creates each table of the schema that does not exist yet,
// together with its primary and foreign key constraints. Existing tables are
// left untouched, so running it again is a no-op.
func Bootstrap(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("%w: no database connection", ErrSchema)
	}

	for _, s := range schema {
		if err := db.Exec(s.ddl).Error; err != nil {
			return fmt.Errorf("%w: creating table %s: %w", ErrSchema, s.table, err)
		}
	}
	return nil
}
