// Package feed renders the congratulation schedule as an iCalendar document,
// one all-day event per congratulation date.
package feed

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
)

// Generator converts upcoming-birthday entries into iCalendar bytes.
type Generator struct {
	Clock book.Clock // Interface for time mocking.

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string) string
}

// Build renders the schedule. An empty schedule yields a minimal valid
// VCALENDAR so calendar clients never see an invalid feed.
func (g *Generator) Build(upcoming []book.Upcoming) ([]byte, error) {
	if len(upcoming) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.Clock.Now().UTC())

	for _, u := range upcoming {
		event := ical.NewEvent()

		// Deterministic UID generation for stability across refreshes.
		input := fmt.Sprintf(config.FormatHashInput,
			u.Name, u.Congratulation.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uid := fmt.Sprintf("%x", hash[:config.UIDHashLength])
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, uid, u.Congratulation.Year(), config.ICalDomain))

		summary := fmt.Sprintf(config.FallbackSummary, u.Name)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(u.Name)
		}
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(u.Congratulation)
		event.Props.Set(dtStartProp)

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedRefresh,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyCount, len(upcoming),
	)
	return buf.Bytes(), nil
}
