package orders

import (
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"catering/internal/builder"
	"catering/internal/i18n"
	"catering/internal/validation"
)

// MinLeadTime is how far ahead an event must be booked.
const MinLeadTime = 24 * time.Hour

const (
	maxNameLen     = 255
	maxAddressLen  = 500
	maxMessageLen  = 2000
	minPhoneDigits = 6
)

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseEventDate accepts RFC 3339 or a local datetime as sent by
// datetime-local inputs. Values without an offset are read in loc.
func ParseEventDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, validation.New("eventDate", "invalid date")
}

type contact struct {
	builder.Contact
	eventDate time.Time
}

func validateContact(in builder.Contact, defLocale string, loc *time.Location, now time.Time) (contact, error) {
	c := contact{Contact: builder.Contact{
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		Address:     strings.TrimSpace(in.Address),
		EventDate:   strings.TrimSpace(in.EventDate),
		Message:     strings.TrimSpace(in.Message),
		Locale:      i18n.Negotiate(in.Locale, defLocale),
	}}

	switch {
	case c.ClientName == "":
		return c, validation.New("clientName", "required")
	case utf8.RuneCountInString(c.ClientName) > maxNameLen:
		return c, validation.New("clientName", "too long")
	case c.ClientPhone == "":
		return c, validation.New("clientPhone", "required")
	case !validPhone(c.ClientPhone):
		return c, validation.New("clientPhone", "invalid phone number")
	case c.ClientEmail == "":
		return c, validation.New("clientEmail", "required")
	case !validEmail(c.ClientEmail):
		return c, validation.New("clientEmail", "invalid email")
	case c.Address == "":
		return c, validation.New("address", "required")
	case utf8.RuneCountInString(c.Address) > maxAddressLen:
		return c, validation.New("address", "too long")
	case c.EventDate == "":
		return c, validation.New("eventDate", "required")
	case utf8.RuneCountInString(c.Message) > maxMessageLen:
		return c, validation.New("message", "too long")
	}

	when, err := ParseEventDate(c.EventDate, loc)
	if err != nil {
		return c, err
	}
	if when.Before(now.Add(MinLeadTime)) {
		return c, validation.New("eventDate", "must be at least 24 hours ahead")
	}
	c.eventDate = when
	return c, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune("+-()/. ", r):
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}
