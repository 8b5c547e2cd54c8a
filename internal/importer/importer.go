// Package importer ingests vCard streams into the address book, from local
// .vcf files or over HTTP(S) with basic auth.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
)

// Importer converts vCard data into address book records.
type Importer struct {
	Fetcher Fetcher
}

// New creates an importer backed by the default HTTP fetcher.
func New() *Importer {
	return &Importer{Fetcher: NewHTTPFetcher()}
}

// ImportFile loads contacts from a local vCard file.
// It returns the number of records added or replaced.
func (im *Importer) ImportFile(ctx context.Context, path string, b *book.AddressBook) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	return im.load(ctx, f, b)
}

// ImportURL fetches a vCard stream over HTTP(S) and loads it.
func (im *Importer) ImportURL(ctx context.Context, url, user, pass string, b *book.AddressBook) (int, error) {
	if im.Fetcher == nil {
		return 0, errors.New("network fetcher is not initialized")
	}

	r, err := im.Fetcher.Fetch(ctx, url, user, pass)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()

	return im.load(ctx, r, b)
}

// load decodes the vCard stream card by card. Malformed cards and fields are
// skipped with a log line to maximize data recovery; only stream-level
// failures abort the import.
func (im *Importer) load(ctx context.Context, r io.Reader, b *book.AddressBook) (int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompImporter)
	log.Info(config.MsgImportStarted)

	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, imported int }{0, 0}

	for {
		if err := ctx.Err(); err != nil {
			return stats.imported, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		stats.processed++

		// Name Strategy: FN (Formatted) > N (Structured) > skip.
		// An unnamed card cannot key a directory slot.
		name := ""
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		if name == "" {
			log.Debug(config.MsgSkippedNoName)
			continue
		}

		rec, err := book.NewRecord(name)
		if err != nil {
			log.Warn(config.MsgSkippedCard,
				config.LogKeyName, name,
				config.LogKeyError, err,
			)
			continue
		}

		for _, tel := range card.Values(config.VCardTEL) {
			if err := rec.AddPhone(normalizePhone(tel)); err != nil {
				log.Debug(config.MsgSkippedPhone,
					config.LogKeyName, name,
					config.LogKeyValue, tel,
				)
			}
		}

		if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
			if date, err := parseVCardDate(bday.Value); err == nil {
				rec.SetBirthdayDate(book.BirthdayFromDate(date))
			} else {
				log.Debug(config.MsgSkippedDate,
					config.LogKeyName, name,
					config.LogKeyValue, bday.Value,
				)
			}
		}

		// Same replace-on-duplicate semantics as a manual add.
		b.Add(rec)
		stats.imported++
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, stats.processed,
		config.LogKeyImported, stats.imported,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats.imported, nil
}

// normalizePhone strips the separators commonly found in vCard TEL values.
// The result must still satisfy the ten-digit rule; anything else (country
// codes, short numbers) is rejected by the record and skipped.
func normalizePhone(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// parseVCardDate handles the full-date vCard BDAY layouts.
// Truncated dates (--MM-DD, year unknown) are not importable: the book
// stores complete calendar dates only.
func parseVCardDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatVCardDash,
		config.DateFormatVCardBasic,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrVCardParse, value)
}
