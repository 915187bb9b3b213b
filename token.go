package seri

import (
	"fmt"
	"time"
)

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota // sentinel: end of input
	TokenKeyword                     // day, talk, speakers, time, ...
	TokenIdentifier                  // any other word
	TokenTime                        // HH:MM
	TokenDuration                    // 45m, 2h, 1h30m
	TokenString                      // "..." with escapes decoded
	TokenPunct                       // : ,
)

var tokenNames = [...]string{
	TokenEOF:        "end of input",
	TokenKeyword:    "keyword",
	TokenIdentifier: "identifier",
	TokenTime:       "time",
	TokenDuration:   "duration",
	TokenString:     "string",
	TokenPunct:      "punctuation",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Position is a 1-based source location. Column counts runes, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Text holds the keyword name, identifier,
// decoded string value or punctuation symbol. Time and Duration are only set
// for TokenTime and TokenDuration.
type Token struct {
	Kind     TokenKind
	Text     string
	Time     TimeOfDay
	Duration time.Duration
	Pos      Position
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Describe returns a short human-readable form used in error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenKeyword:
		return fmt.Sprintf("keyword %q", t.Text)
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case TokenTime:
		return fmt.Sprintf("time %s", t.Time)
	case TokenDuration:
		return fmt.Sprintf("duration %s", FormatDuration(t.Duration))
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	case TokenPunct:
		return fmt.Sprintf("%q", t.Text)
	default:
		return t.Kind.String()
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%-6s %-12s %s", t.Pos, t.Kind, t.Describe())
}
