// Package dates renders timestamps the way the meeting views display them.
package dates

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Formatted is a date/time pair rendered for display.
type Formatted struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type layout struct {
	date string
	time string
}

var (
	supported = []language.Tag{
		language.MustParse("fr-FR"), // first entry is the fallback
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
	}
	matcher = language.NewMatcher(supported)
	layouts = map[language.Tag]layout{
		supported[0]:             {date: "02/01/2006", time: "15:04"},
		language.AmericanEnglish: {date: "1/2/2006", time: "03:04 PM"},
		language.BritishEnglish:  {date: "02/01/2006", time: "15:04"},
		language.German:          {date: "2.1.2006", time: "15:04"},
	}
	inputLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}
)

// Formatter renders timestamps for one locale and time zone.
type Formatter struct {
	tag    language.Tag
	layout layout
	loc    *time.Location
}

// NewFormatter returns a formatter for the closest supported locale to
// locale (fr-FR when nothing matches) rendering in the named time zone.
func NewFormatter(locale, timezone string) (*Formatter, error) {
	loc := time.UTC
	if strings.TrimSpace(timezone) != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("time zone: %w", err)
		}
		loc = l
	}
	_, idx, _ := matcher.Match(language.Make(locale))
	tag := supported[idx]
	return &Formatter{tag: tag, layout: layouts[tag], loc: loc}, nil
}

// Locale returns the locale the formatter renders in.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders t.
func (f *Formatter) Format(t time.Time) Formatted {
	t = t.In(f.loc)
	return Formatted{Date: t.Format(f.layout.date), Time: t.Format(f.layout.time)}
}

// FormatString parses a stored timestamp and renders it. Empty input yields
// an empty result.
func (f *Formatter) FormatString(s string) (Formatted, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Formatted{}, nil
	}
	for _, l := range inputLayouts {
		if t, err := time.ParseInLocation(l, s, f.loc); err == nil {
			return f.Format(t), nil
		}
	}
	return Formatted{}, fmt.Errorf("unsupported timestamp %q", s)
}

var defaultFormatter = &Formatter{tag: supported[0], layout: layouts[supported[0]], loc: time.UTC}

// FormatDate renders s as a French (fr-FR) date and two-digit hour/minute
// time in UTC. Empty input yields an empty result.
func FormatDate(s string) (Formatted, error) {
	return defaultFormatter.FormatString(s)
}
