package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ISBN is a 13 digit International Standard Book Number.
type ISBN string

// IsValid returns true if the ISBN has exactly 13 decimal digits.
func (i ISBN) IsValid() bool {
	if len(i) != 13 {
		return false
	}
	for _, r := range i {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (i *ISBN) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*i = ISBN(v)
	case []byte:
		*i = ISBN(v)
	default:
		return fmt.Errorf("cannot scan %T into ISBN", value)
	}
	return nil
}

func (i ISBN) Value() (driver.Value, error) {
	if !i.IsValid() {
		return nil, fmt.Errorf("invalid ISBN %q", string(i))
	}
	return string(i), nil
}

// A Publisher issues Books. Identifiers are assigned by the caller.
type Publisher struct {
	PublisherID int    `gorm:"primaryKey;autoIncrement:false;type:integer;not null"`
	Name        string `gorm:"size:255;not null"`
}

// An Author writes Books; only the first name is mandatory.
type Author struct {
	AuthorID   int     `gorm:"primaryKey;autoIncrement:false;type:integer;not null"`
	FirstName  string  `gorm:"size:100;not null"`
	MiddleName *string `gorm:"size:50"`
	LastName   *string `gorm:"size:100"`
}

// A Book optionally belongs to a Publisher through PublisherID.
type Book struct {
	BookID        int        `gorm:"primaryKey;autoIncrement:false;type:integer;not null"`
	Title         string     `gorm:"size:255;not null"`
	TotalPages    *int       `gorm:"type:integer"`
	Rating        *float64   `gorm:"type:decimal(4,2)"`
	ISBN          *ISBN      `gorm:"column:isbn;size:13"`
	PublishedDate *time.Time `gorm:"type:date"`
	PublisherID   *int       `gorm:"type:integer"`
}

// BookAuthor links Books and Authors many-to-many.
type BookAuthor struct {
	BookID   int `gorm:"primaryKey;autoIncrement:false;type:integer;not null"` // FK
	AuthorID int `gorm:"primaryKey;autoIncrement:false;type:integer;not null"` // FK
}
