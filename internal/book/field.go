package book

import (
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Name identifies a contact. Any non-empty text is accepted; the directory
// keys records by its exact value.
type Name string

// NewName validates and wraps a contact name.
func NewName(text string) (Name, error) {
	if text == "" {
		return "", ErrEmptyName
	}
	return Name(text), nil
}

func (n Name) String() string {
	return string(n)
}

// Phone is a phone number stored verbatim: exactly ten decimal digits,
// no normalization and no country-code handling.
type Phone string

// NewPhone validates and wraps a phone number.
func NewPhone(text string) (Phone, error) {
	if len(text) != config.PhoneLength {
		return "", ErrInvalidPhone
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return Phone(text), nil
}

func (p Phone) String() string {
	return string(p)
}

// Birthday is a calendar date. It stores the parsed date, not the input text.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a birthday from its DD.MM.YYYY representation.
// The pattern is strict: two-digit day and month, four-digit year, and the
// triple must denote a real calendar date. time.Parse alone would accept
// "2.1.1985", so the input length is checked as well.
func NewBirthday(text string) (Birthday, error) {
	if len(text) != config.DateInputLength {
		return Birthday{}, ErrInvalidDate
	}
	t, err := time.Parse(config.DateFormatDisplay, text)
	if err != nil {
		return Birthday{}, ErrInvalidDate
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate wraps an already-known date, truncated to its calendar day.
// Used by the vCard importer, which parses other layouts.
func BirthdayFromDate(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the stored calendar date.
func (b Birthday) Date() time.Time {
	return b.date
}

// String renders the date in the fixed DD.MM.YYYY boundary format.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatDisplay)
}
