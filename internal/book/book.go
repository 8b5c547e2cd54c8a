package book

import (
	"math"
	"time"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
	// Monday-based weekday indexes: Monday=0 ... Saturday=5, Sunday=6.
	firstWeekendIndex = 5
)

// Upcoming is one entry of the greeting schedule: who to congratulate and on
// which day. It is derived on every query, never stored.
type Upcoming struct {
	Name           string
	Congratulation time.Time
}

// AddressBook maps contact names to records. It keeps explicit insertion
// order so that display and query output are deterministic.
type AddressBook struct {
	clock   Clock
	records map[string]*Record
	order   []string
}

// New creates an empty address book backed by the real clock.
func New() *AddressBook {
	return NewWithClock(RealClock{})
}

// NewWithClock creates an empty address book with an injected clock.
func NewWithClock(c Clock) *AddressBook {
	return &AddressBook{
		clock:   c,
		records: make(map[string]*Record),
	}
}

// Add inserts the record under its name. An existing record with the same
// name is replaced wholesale (its phones and birthday are discarded, not
// merged); the replacement keeps the prior record's display position.
func (b *AddressBook) Add(r *Record) {
	key := r.Name().String()
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record for name, or nil when absent.
// Absence is not an error; callers decide how to surface it.
func (b *AddressBook) Find(name string) *Record {
	return b.records[name]
}

// Delete removes the record for name. Deleting an absent name is a no-op.
func (b *AddressBook) Delete(name string) {
	if _, exists := b.records[name]; !exists {
		return
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Records returns all records in display (insertion) order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Len reports the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Upcoming scans all records and returns the greeting schedule for birthdays
// falling within windowDays of today (both bounds inclusive). A birthday
// landing on Saturday or Sunday is shifted forward to the following Monday.
// Entries come out in display order; no sort by date is applied.
//
// Only the occurrence in today's year is considered, so an early-January
// birthday is not reported when the query runs in late December. A Feb 29
// birthday is treated as Mar 1 in non-leap years (time.Date normalization).
func (b *AddressBook) Upcoming(windowDays int) []Upcoming {
	now := b.clock.Now()
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var out []Upcoming
	for _, key := range b.order {
		r := b.records[key]
		if r.birthday == nil {
			continue
		}

		bd := r.birthday.Date()
		occurrence := time.Date(today.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, loc)

		// Rounding absorbs DST offsets between the two local midnights.
		delta := int(math.Round(occurrence.Sub(today).Hours() / hoursPerDay))
		if delta < 0 || delta > windowDays {
			continue
		}

		congratulation := occurrence
		if idx := (int(occurrence.Weekday()) + daysPerWeek - 1) % daysPerWeek; idx >= firstWeekendIndex {
			congratulation = occurrence.AddDate(0, 0, daysPerWeek-idx)
		}

		out = append(out, Upcoming{
			Name:           key,
			Congratulation: congratulation,
		})
	}
	return out
}
