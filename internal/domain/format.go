package domain

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UnknownTime is shown when the feed omits an event time.
const UnknownTime = "Unknown time"

// DisplayTimeLayout is the layout used for event times in list rows and popups.
const DisplayTimeLayout = "2006-01-02 15:04:05 MST"

// Formatter renders record fields for display. Numbers follow the locale's
// decimal conventions; times are shown in the configured zone.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	loc     *time.Location
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-US" or
// "ru-RU". An unparsable locale falls back to American English and a nil
// location to UTC.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		loc:     loc,
	}
}

// Locale returns the resolved language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Magnitude formats a magnitude with one decimal place, e.g. "5.1".
func (f *Formatter) Magnitude(m float64) string {
	return f.printer.Sprintf("%.1f", m)
}

// Depth formats a hypocenter depth in kilometers. Returns "" when unknown.
func (f *Formatter) Depth(depth *float64) string {
	if depth == nil {
		return ""
	}
	return f.printer.Sprintf("%.1f km", *depth)
}

// Time formats an event time in the display zone.
func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return UnknownTime
	}
	return t.In(f.loc).Format(DisplayTimeLayout)
}
