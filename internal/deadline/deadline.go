// Package deadline decides whether an application window is still open
// and how many calendar days remain. Expiry is determined at day
// granularity: the deadline day itself still counts as open.
package deadline

import (
	"strings"
	"time"
)

// Layouts accepted for backend date strings. The backend promises
// "ISO-ish", not ISO, so the common legacy renderings are tried too.
var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"January 2, 2006",
	"2 January 2006",
}

// Parse reads a backend date string into UTC. Malformed input yields
// nil rather than an error; callers treat nil as "unknown date".
func Parse(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// Evaluation is the derived expiry state of one job.
type Evaluation struct {
	Expired bool
	// DaysRemaining is the calendar-day distance from now to the
	// deadline: 0 means today is the last day, negative means expired
	// that many days ago, nil means no known deadline.
	DaysRemaining *int
}

// Evaluate compares a deadline against now at day granularity. The
// deadline is extended to the end of its calendar day and now is
// truncated to the start of its day before comparison. An unknown
// deadline never expires; that mirrors the listing's long-standing
// behavior and is a policy choice, not an accident.
func Evaluate(deadline *time.Time, now time.Time) Evaluation {
	if deadline == nil {
		return Evaluation{}
	}

	d := deadline.UTC()
	deadlineDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := deadlineDay.AddDate(0, 0, 1).Add(-time.Millisecond)

	n := now.UTC()
	nowDay := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)

	days := int(deadlineDay.Sub(nowDay) / (24 * time.Hour))
	return Evaluation{
		Expired:       endOfDay.Before(nowDay),
		DaysRemaining: &days,
	}
}

// Urgency is the presentation bucket derived from DaysRemaining. The
// thresholds are part of the tested contract because the UI's coloring
// is driven directly by them.
type Urgency string

const (
	UrgencyNone     Urgency = "none"
	UrgencyExpired  Urgency = "expired"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyModerate Urgency = "moderate"
	UrgencyRelaxed  Urgency = "relaxed"
)

func BucketFor(daysRemaining *int) Urgency {
	if daysRemaining == nil {
		return UrgencyNone
	}
	switch d := *daysRemaining; {
	case d < 0:
		return UrgencyExpired
	case d < 7:
		return UrgencyUrgent
	case d <= 30:
		return UrgencyModerate
	default:
		return UrgencyRelaxed
	}
}
