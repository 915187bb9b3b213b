package seri

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// MinutesPerDay is the exclusive upper bound of a TimeOfDay.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and a minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Add returns t shifted by d, truncated to whole minutes. The result may be
// 24:00 or later; callers that need a wall-clock time must check Valid.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// FormatDuration formats d in the source syntax: 45m, 2h, 1h30m.
func FormatDuration(d time.Duration) string {
	mins := int(d / time.Minute)
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// Kind is the type of a session.
type Kind string

const (
	KindTalk      Kind = "talk"
	KindMeal      Kind = "meal"
	KindBreak     Kind = "break"
	KindFun       Kind = "fun"
	KindTransport Kind = "transport"
)

// Kinds lists every session kind in declaration order.
var Kinds = []Kind{KindTalk, KindMeal, KindBreak, KindFun, KindTransport}

// Speaker is a speaker name. Speakers are equal when their names are equal.
type Speaker string

// Schedule is the root of the intermediate representation: an ordered
// sequence of days in document order.
type Schedule struct {
	Days []Day
}

// Day groups sessions sharing a date context. Label is empty when the
// document did not give one.
type Day struct {
	Label    string
	Sessions []Session
}

// Session is one talk or event. Start, Duration, Abstract and Lang are nil
// when the corresponding header is absent.
type Session struct {
	Kind     Kind
	Title    string
	Speakers []Speaker
	Start    *TimeOfDay
	Duration *time.Duration
	Abstract *string
	Lang     *language.Tag
	Pos      Position
}

// Date returns the day label parsed as an ISO date (2006-01-02).
func (d Day) Date() (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(d.Label))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Title returns the heading shown for the day: the long date form for ISO
// labels, the raw label otherwise.
func (d Day) Title() string {
	if t, ok := d.Date(); ok {
		return t.Format("Monday, January 2")
	}
	return d.Label
}

// End returns start + duration when both are present.
func (s Session) End() (TimeOfDay, bool) {
	if !s.Scheduled() {
		return 0, false
	}
	return s.Start.Add(*s.Duration), true
}

// Scheduled reports whether both start and duration are set.
func (s Session) Scheduled() bool {
	return s.Start != nil && s.Duration != nil
}

// SpeakerNames joins the speaker names with ", ".
func (s Session) SpeakerNames() string {
	names := make([]string, len(s.Speakers))
	for i, sp := range s.Speakers {
		names[i] = string(sp)
	}
	return strings.Join(names, ", ")
}

// Clone returns a deep copy of the schedule. Passes that change anything
// work on a clone so the input value is never mutated.
func (s Schedule) Clone() Schedule {
	if s.Days == nil {
		return Schedule{}
	}
	days := make([]Day, len(s.Days))
	for i, d := range s.Days {
		days[i] = d.Clone()
	}
	return Schedule{Days: days}
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := Day{Label: d.Label}
	if d.Sessions != nil {
		out.Sessions = make([]Session, len(d.Sessions))
		for i, s := range d.Sessions {
			out.Sessions[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	if s.Speakers != nil {
		out.Speakers = append([]Speaker(nil), s.Speakers...)
	}
	if s.Start != nil {
		v := *s.Start
		out.Start = &v
	}
	if s.Duration != nil {
		v := *s.Duration
		out.Duration = &v
	}
	if s.Abstract != nil {
		v := *s.Abstract
		out.Abstract = &v
	}
	if s.Lang != nil {
		v := *s.Lang
		out.Lang = &v
	}
	return out
}

// Check verifies the structural invariants every pass may rely on: known
// kinds, start times within a day, and non-negative durations.
func (s Schedule) Check() error {
	for di, d := range s.Days {
		for si, sess := range d.Sessions {
			if !validKind(sess.Kind) {
				return fmt.Errorf("day %d session %d: unknown kind %q: %w", di+1, si+1, sess.Kind, ErrInternal)
			}
			if sess.Start != nil && !sess.Start.Valid() {
				return fmt.Errorf("day %d session %d: start %d out of range: %w", di+1, si+1, int(*sess.Start), ErrInternal)
			}
			if sess.Duration != nil && *sess.Duration < 0 {
				return fmt.Errorf("day %d session %d: negative duration: %w", di+1, si+1, ErrInternal)
			}
		}
	}
	return nil
}

func validKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// SessionCount returns the total number of sessions across all days.
func (s Schedule) SessionCount() int {
	n := 0
	for _, d := range s.Days {
		n += len(d.Sessions)
	}
	return n
}
