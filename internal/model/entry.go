package model

import (
	"encoding/json"
	"fmt"
)

// Rating scores a day from -2 (horrible) to +2 (awesome).
type Rating int8

// Valid ratings.
const (
	RatingHorrible Rating = -2
	RatingBad      Rating = -1
	RatingOkay     Rating = 0
	RatingGood     Rating = 1
	RatingAwesome  Rating = 2
)

// Ratings lists the valid ratings from best to worst.
var Ratings = []Rating{RatingAwesome, RatingGood, RatingOkay, RatingBad, RatingHorrible}

// Placeholder values used on disk for a day without an entry.
const (
	UnrecordedRating = 42
	UnrecordedText   = "wow, such empty"
)

// Valid reports whether r is within -2..2.
func (r Rating) Valid() bool {
	return r >= RatingHorrible && r <= RatingAwesome
}

// Label returns the display label for r.
func (r Rating) Label() string {
	switch r {
	case RatingAwesome:
		return "+2 (awesome)"
	case RatingGood:
		return "+1"
	case RatingOkay:
		return " 0 (okay)"
	case RatingBad:
		return "-1"
	case RatingHorrible:
		return "-2 (horrible)"
	default:
		return fmt.Sprintf("%+d", int(r))
	}
}

// Entry is one day of a MonthLog. The zero value is an unrecorded day.
type Entry struct {
	recorded bool
	rating   Rating
	text     string
}

// Recorded builds a populated entry. The rating is not range-checked.
func Recorded(rating Rating, text string) Entry {
	return Entry{recorded: true, rating: rating, text: text}
}

// Unrecorded returns the empty entry.
func Unrecorded() Entry {
	return Entry{}
}

// IsRecorded reports whether the day has an entry.
func (e Entry) IsRecorded() bool {
	return e.recorded
}

// Rating returns the rating and whether the entry is recorded.
func (e Entry) Rating() (Rating, bool) {
	return e.rating, e.recorded
}

// Text returns the diary text, empty for unrecorded entries.
func (e Entry) Text() string {
	return e.text
}

func (e Entry) String() string {
	if !e.recorded {
		return UnrecordedText
	}
	return fmt.Sprintf("rating: %d\n\n%s", e.rating, e.text)
}

type entryJSON struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// MarshalJSON writes the on-disk form, using the placeholder for unrecorded days.
func (e Entry) MarshalJSON() ([]byte, error) {
	if !e.recorded {
		return json.Marshal(entryJSON{Rating: UnrecordedRating, Text: UnrecordedText})
	}
	return json.Marshal(entryJSON{Rating: int(e.rating), Text: e.text})
}

// UnmarshalJSON reads the on-disk form. Only the full placeholder, rating and
// text together, decodes as unrecorded.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rating == UnrecordedRating && raw.Text == UnrecordedText {
		*e = Entry{}
		return nil
	}
	if raw.Rating < -128 || raw.Rating > 127 {
		return fmt.Errorf("rating %d does not fit a day rating", raw.Rating)
	}
	*e = Recorded(Rating(raw.Rating), raw.Text)
	return nil
}
