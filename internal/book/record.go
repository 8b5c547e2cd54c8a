package book

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Record is one contact: a fixed name, an ordered list of phone numbers
// (duplicates allowed, order = insertion order) and an optional birthday.
// A Record is owned by the directory slot holding it and is never shared.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for the given name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name. It is set once and never changes.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the stored birthday, or nil when none is set.
func (r *Record) Birthday() *Birthday {
	return r.birthday
}

// AddPhone validates text and appends it to the phone list.
// On validation failure the list is left unchanged.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone deletes the first phone equal to text.
func (r *Record) RemovePhone(text string) error {
	for i, p := range r.phones {
		if p.String() == text {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return ErrPhoneNotFound
}

// EditPhone replaces the first phone equal to oldText with newText,
// keeping its position. The operation is atomic: if newText is invalid
// the old value stays in place.
func (r *Record) EditPhone(oldText, newText string) error {
	for i, p := range r.phones {
		if p.String() == oldText {
			np, err := NewPhone(newText)
			if err != nil {
				return err
			}
			r.phones[i] = np
			return nil
		}
	}
	return ErrPhoneNotFound
}

// FindPhone looks up a phone by exact value. Absence is not an error.
func (r *Record) FindPhone(text string) (Phone, bool) {
	for _, p := range r.phones {
		if p.String() == text {
			return p, true
		}
	}
	return "", false
}

// SetBirthday parses text and stores it, overwriting any prior birthday.
func (r *Record) SetBirthday(text string) error {
	b, err := NewBirthday(text)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthdayDate stores an already-constructed birthday as-is.
func (r *Record) SetBirthdayDate(b Birthday) {
	r.birthday = &b
}

// String renders the record in the fixed display shape:
// "Contact name: {name}, phones: {p1}; {p2}[, birthday: DD.MM.YYYY]".
func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.String()
	}

	s := fmt.Sprintf(config.FormatRecord, r.name, strings.Join(values, config.PhoneSeparator))
	if r.birthday != nil {
		s += fmt.Sprintf(config.FormatBirthdaySuffix, r.birthday)
	}
	return s
}
