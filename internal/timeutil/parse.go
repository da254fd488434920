package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDayInput turns user input such as "2024-05-10", "yesterday" or "last friday"
// into a day key in loc, relative to now. Empty input returns an empty key.
func ParseDayInput(input string, now time.Time, loc *time.Location) (string, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return "", nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := ParseDay(input, loc); err == nil {
		return DayKey(t, loc), nil
	}
	r, err := dateParser.Parse(input, now.In(loc))
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if r == nil {
		return "", fmt.Errorf("could not recognize date %q", input)
	}
	return DayKey(r.Time, loc), nil
}
