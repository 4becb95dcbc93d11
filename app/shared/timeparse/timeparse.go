// Package timeparse turns admin-entered times ("2026-11-14T21:30:00-06:00",
// "2026-11-14 21:30", "saturday at 9:30pm") into UTC instants in the event's timezone.
package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns a Clock backed by time.Now.
func RealClock() Clock { return realClock{} }

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

var layouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 3:04pm",
	"2006-01-02 3:04 pm",
}

// Parser resolves time strings relative to a location.
type Parser struct {
	loc   *time.Location
	clock Clock
	w     *when.Parser
}

// New creates a Parser for loc. A nil clock uses the wall clock.
func New(loc *time.Location, clock Clock) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = RealClock()
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{loc: loc, clock: clock, w: w}
}

// Location returns the parser's location.
func (p *Parser) Location() *time.Location { return p.loc }

// Parse resolves input to a UTC time.
func (p *Parser) Parse(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	lower := strings.ToLower(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, lower, p.loc); err == nil {
			return t.UTC(), nil
		}
	}

	// "932pm" -> "9:32 pm", "today 9pm" -> "today at 9pm"
	lower = compactTime.ReplaceAllString(lower, "$1:$2 $3")
	lower = strings.ReplaceAll(lower, "today ", "today at ")
	lower = strings.ReplaceAll(lower, "tonight ", "today at ")
	lower = strings.ReplaceAll(lower, "at at", "at")

	r, err := p.w.Parse(lower, p.clock.Now().In(p.loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse time %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize time format: %s", input)
	}
	return r.Time.In(p.loc).Truncate(time.Minute).UTC(), nil
}

// ParseOptional parses a nullable input; nil or blank yields nil.
func (p *Parser) ParseOptional(input *string) (*time.Time, error) {
	if input == nil || strings.TrimSpace(*input) == "" {
		return nil, nil
	}
	t, err := p.Parse(*input)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
