package model

import (
	"time"

	"github.com/google/uuid"
)

// Genre represents the valid book genres.
type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
)

func (g Genre) IsValid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreScience, GenreHistory, GenreBiography, GenreFantasy:
		return true
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// Genres lists every valid genre, for validation rules.
func Genres() []interface{} {
	return []interface{}{
		GenreFiction, GenreNonFiction, GenreScience,
		GenreHistory, GenreBiography, GenreFantasy,
	}
}

// Book is the persisted book entity. Available is derived from Copies
// after every mutation and never taken from client input.
type Book struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Genre       Genre     `json:"genre" db:"genre"`
	ISBN        string    `json:"isbn" db:"isbn"`
	Description string    `json:"description" db:"description"`
	Copies      int       `json:"copies" db:"copies"`
	Available   bool      `json:"available" db:"is_available"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AvailableFor is the single availability rule: a book is available
// iff it has at least one copy.
func AvailableFor(copies int) bool {
	return copies > 0
}

// RecomputeAvailability re-derives Available from Copies. Called after
// every copies-mutating change.
func (b *Book) RecomputeAvailability() {
	b.Available = AvailableFor(b.Copies)
}
