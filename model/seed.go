package model

import "time"

func ptr[T any](v T) *T { return &v }

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// SeedPublishers returns the fixed publisher rows loaded by the seeder.
func SeedPublishers() []Publisher {
	return []Publisher{
		{PublisherID: 1, Name: "O Reilly Media"},
		{PublisherID: 2, Name: "A Book Apart"},
	}
}

func SeedAuthors() []Author {
	return []Author{
		{AuthorID: 1, FirstName: "Ethan", LastName: ptr("Marcotte")},
		{AuthorID: 2, FirstName: "Jeremy", LastName: ptr("Keith")},
		{AuthorID: 3, FirstName: "Martin", LastName: ptr("Kleppmann")},
		{AuthorID: 4, FirstName: "Rachel", MiddleName: ptr("E."), LastName: ptr("Andrew")},
	}
}

// SeedBooks references the publishers of SeedPublishers.
func SeedBooks() []Book {
	return []Book{
		{
			BookID:        1,
			Title:         "Designing Data-Intensive Applications",
			TotalPages:    ptr(616),
			Rating:        ptr(4.70),
			ISBN:          ptr(ISBN("9781449373320")),
			PublishedDate: date(2017, time.March, 16),
			PublisherID:   ptr(1),
		},
		{
			BookID:        2,
			Title:         "Responsive Web Design",
			TotalPages:    ptr(143),
			Rating:        ptr(4.20),
			ISBN:          ptr(ISBN("9780984442577")),
			PublishedDate: date(2011, time.June, 7),
			PublisherID:   ptr(2),
		},
		{
			BookID:        3,
			Title:         "HTML5 for Web Designers",
			TotalPages:    ptr(98),
			Rating:        ptr(3.90),
			ISBN:          ptr(ISBN("9781937557249")),
			PublishedDate: date(2016, time.February, 2),
			PublisherID:   ptr(2),
		},
	}
}

// SeedBookAuthors links SeedBooks to SeedAuthors.
func SeedBookAuthors() []BookAuthor {
	return []BookAuthor{
		{BookID: 1, AuthorID: 3},
		{BookID: 2, AuthorID: 1},
		{BookID: 3, AuthorID: 2},
		{BookID: 3, AuthorID: 4},
	}
}
