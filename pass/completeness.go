package pass

import (
	"strings"

	"github.com/fwojciec/seri"
)

// Completeness checks that every session carries the headers it needs.
// Titles must be non-blank. Durations must be positive and a scheduled
// session must end by midnight. In strict mode every session also needs a
// start time and a duration.
type Completeness struct {
	Strict bool
}

// Name returns the pass name.
func (Completeness) Name() string { return NameCompleteness }

// Apply returns s unchanged or the first incomplete session as a
// *seri.SemanticError.
func (c Completeness) Apply(s seri.Schedule) (seri.Schedule, error) {
	for di, day := range s.Days {
		for _, sess := range day.Sessions {
			if err := c.check(sess); err != nil {
				err.Pass = NameCompleteness
				err.Day = di + 1
				err.DayLabel = day.Label
				return seri.Schedule{}, err
			}
		}
	}
	return s, nil
}

func (c Completeness) check(sess seri.Session) *seri.SemanticError {
	fail := func(err error, detail string) *seri.SemanticError {
		return &seri.SemanticError{Session: sess, Detail: detail, Err: err}
	}
	if strings.TrimSpace(sess.Title) == "" {
		return fail(seri.ErrMissingTitle, "title is blank")
	}
	if c.Strict {
		switch {
		case sess.Start == nil && sess.Duration == nil:
			return fail(seri.ErrUnscheduled, "no time or duration")
		case sess.Start == nil:
			return fail(seri.ErrUnscheduled, "no time")
		case sess.Duration == nil:
			return fail(seri.ErrUnscheduled, "no duration")
		}
	}
	if sess.Duration != nil && *sess.Duration <= 0 {
		return fail(seri.ErrInvalidValue, "duration must be positive")
	}
	if end, ok := sess.End(); ok && end > seri.MinutesPerDay {
		return fail(seri.ErrInvalidValue, "ends after midnight")
	}
	return nil
}
