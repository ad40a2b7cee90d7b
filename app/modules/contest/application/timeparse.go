package contestservice

import (
	"errors"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var naturalParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// ParseFlexibleTime accepts RFC3339 ("2026-09-01T20:00:00Z") or a natural
// English phrase ("next friday 8pm") relative to now.
func ParseFlexibleTime(input string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	result, err := naturalParser.Parse(input, now)
	if err != nil {
		return time.Time{}, err
	}
	if result == nil {
		return time.Time{}, errors.New("unrecognized date format")
	}
	return result.Time, nil
}
