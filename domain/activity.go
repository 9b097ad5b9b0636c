package domain

import (
	"fmt"
	"time"
)

// DateFormat is the layout for the tanggal column: ISO-8601 calendar dates.
// Lexicographic order on this layout equals chronological order, which the
// repositories and the aggregation helpers rely on.
const DateFormat = "2006-01-02"

// Duration bounds accepted at the store boundary, in minutes.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 300
)

// Categories is the closed set of activity labels. The schema does not
// constrain the column; the usecase layer rejects anything outside this set.
var Categories = []string{
	"Sosial Media",
	"Belajar",
	"Baca Artikel",
	"Coding",
	"Hiburan",
	"Olahraga",
	"Lainnya",
}

// ValidCategory reports whether name belongs to the closed category set.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Activity represents one recorded entry. ID is assigned by the store on
// insert; Username and Date are immutable after creation.
type Activity struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Date            string `json:"tanggal"`
	Category        string `json:"kategori"`
	Description     string `json:"deskripsi"`
	DurationMinutes int    `json:"durasi"`
}

// Validate checks the store-boundary invariants: a parseable date, a known
// category, and a duration inside [MinDurationMinutes, MaxDurationMinutes].
func (a *Activity) Validate() error {
	if a == nil {
		return ErrInvalidPayload
	}
	if _, err := time.Parse(DateFormat, a.Date); err != nil {
		return NewError(ErrCodeInvalid, fmt.Sprintf("tanggal must be %s formatted", DateFormat))
	}
	if !ValidCategory(a.Category) {
		return NewError(ErrCodeInvalid, fmt.Sprintf("unknown kategori %q", a.Category))
	}
	if a.DurationMinutes < MinDurationMinutes || a.DurationMinutes > MaxDurationMinutes {
		return NewError(ErrCodeInvalid, fmt.Sprintf("durasi must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes))
	}
	return nil
}
