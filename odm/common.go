package odm

import (
	"fmt"
	"time"
)

// iso8601 is the date-time form RWS expects, without a zone suffix.
const iso8601 = "2006-01-02T15:04:05"

func nowISO8601() string {
	return time.Now().UTC().Format(iso8601)
}

func boolToYesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// DateTime is a calendar date or date-time destined for an ODM
// attribute. Building one from a time.Time keeps raw strings out of
// attributes the schema types as dates.
type DateTime struct {
	t        time.Time
	dateOnly bool
	valid    bool
}

// NewDateTime wraps t as a date-time value.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t: t, valid: true}
}

// NewDate wraps t keeping only its calendar date.
func NewDate(t time.Time) DateTime {
	return DateTime{t: t, dateOnly: true, valid: true}
}

// ISO8601 returns the canonical text form, empty for the zero value.
func (d DateTime) ISO8601() string {
	if !d.valid {
		return ""
	}
	if d.dateOnly {
		return d.t.Format("2006-01-02")
	}
	return d.t.Format(iso8601)
}

func textElement(b *Builder, tag, text string) {
	b.Start(tag)
	b.Data(text)
	b.End()
}

func checkTransaction(element string, allowed []TransactionType, t TransactionType) error {
	for _, a := range allowed {
		if a == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %s does not allow TransactionType %q", ErrInvalidConfiguration, element, t)
}
