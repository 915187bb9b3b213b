package seri

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes. The typed errors below unwrap to
// one of these so callers can match with errors.Is.
var (
	// ErrUnexpectedChar indicates a character that starts no token.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrMalformedLiteral indicates a time, duration or string literal that
	// could not be decoded.
	ErrMalformedLiteral = errors.New("malformed literal")

	// ErrUnexpectedToken indicates a grammar violation.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrDuplicateHeader indicates a header given twice in one session.
	ErrDuplicateHeader = errors.New("duplicate header")

	// ErrUnknownHeader indicates a header name the language does not define.
	ErrUnknownHeader = errors.New("unrecognized header")

	// ErrMissingTitle indicates a session without a title.
	ErrMissingTitle = errors.New("missing title")

	// ErrOverlap indicates two sessions of one day whose intervals intersect.
	ErrOverlap = errors.New("sessions overlap")

	// ErrOutOfOrder indicates start times that decrease in document order.
	ErrOutOfOrder = errors.New("sessions out of order")

	// ErrUnscheduled indicates a session without start or duration where one
	// is required.
	ErrUnscheduled = errors.New("session not scheduled")

	// ErrInvalidValue indicates a header value that is well-formed but not
	// meaningful, such as a zero duration.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingPlaceholder indicates a template without the calendar
	// insertion point.
	ErrMissingPlaceholder = errors.New("template missing insertion point")

	// ErrInternal indicates a broken structural invariant. It is a
	// programming error, not a problem with the input document.
	ErrInternal = errors.New("internal error")
)

// LexError is returned by the lexer on the first character it cannot use.
type LexError struct {
	Pos    Position
	Char   rune // offending character; 0 at end of input
	Detail string
	Err    error
}

func (e *LexError) Error() string {
	what := "end of input"
	if e.Char != 0 {
		what = fmt.Sprintf("%q", e.Char)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v at %s: %s", e.Pos, e.Err, what, e.Detail)
	}
	return fmt.Sprintf("%s: %v %s", e.Pos, e.Err, what)
}

func (e *LexError) Unwrap() error { return e.Err }

// ParseError is returned by the parser on the first grammar violation.
type ParseError struct {
	Pos      Position
	Expected string
	Found    Token
	Err      error
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %v: %s", e.Pos, e.Err, e.Found.Describe())
	}
	return fmt.Sprintf("%s: %v: expected %s, found %s", e.Pos, e.Err, e.Expected, e.Found.Describe())
}

func (e *ParseError) Unwrap() error { return e.Err }

// SemanticError is returned by a pass. Day is the 1-based day index and
// Session the offending session; Other is set for errors involving a second
// session, such as an overlap.
type SemanticError struct {
	Pass     string
	Day      int
	DayLabel string
	Session  Session
	Other    *Session
	Detail   string
	Err      error
}

func (e *SemanticError) Error() string {
	day := fmt.Sprintf("day %d", e.Day)
	if e.DayLabel != "" {
		day = fmt.Sprintf("day %d (%s)", e.Day, e.DayLabel)
	}
	msg := fmt.Sprintf("%s: %s: %v: %s", e.Session.Pos, day, e.Err, describeSession(e.Session))
	if e.Other != nil {
		msg += " and " + describeSession(*e.Other)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *SemanticError) Unwrap() error { return e.Err }

// RenderError is returned by a renderer.
type RenderError struct {
	Format  Format
	Session *Session
	Detail  string
	Err     error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Format, e.Err)
	if e.Session != nil {
		msg = fmt.Sprintf("%s: %s", e.Session.Pos, msg) + ": " + describeSession(*e.Session)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

func describeSession(s Session) string {
	if s.Title == "" {
		return fmt.Sprintf("untitled %s", s.Kind)
	}
	return fmt.Sprintf("%s %q", s.Kind, s.Title)
}

// ErrorPosition returns the source position carried by err, if any.
func ErrorPosition(err error) (Position, bool) {
	var (
		lexErr    *LexError
		parseErr  *ParseError
		semErr    *SemanticError
		renderErr *RenderError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &parseErr):
		return parseErr.Pos, true
	case errors.As(err, &semErr):
		return semErr.Session.Pos, semErr.Session.Pos.Line > 0
	case errors.As(err, &renderErr) && renderErr.Session != nil:
		return renderErr.Session.Pos, renderErr.Session.Pos.Line > 0
	}
	return Position{}, false
}
