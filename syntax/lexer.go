// Package syntax turns Seri source text into a seri.Schedule.
//
// The lexer is pull-based: each call to Next returns one token, and the
// stream ends with an explicit EOF token. The parser is recursive descent
// with a single token of lookahead.
package syntax

import (
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/seri"
)

// keywords is the closed set of reserved words.
var keywords = map[string]bool{
	"day":       true,
	"talk":      true,
	"meal":      true,
	"break":     true,
	"fun":       true,
	"transport": true,
	"speakers":  true,
	"time":      true,
	"duration":  true,
	"abstract":  true,
	"lang":      true,
}

// Lexer holds all mutable state for a single scan over src. It cannot be
// rewound; create a new Lexer to start over.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int
	col  int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) position() seri.Position {
	return seri.Position{Line: l.line, Column: l.col}
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.atEnd() {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// skipTrivia discards whitespace and # comments.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		switch r := l.peek(); {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token. Once the input is exhausted it returns an
// EOF token on every call.
func (l *Lexer) Next() (seri.Token, error) {
	l.skipTrivia()
	start := l.position()
	if l.atEnd() {
		return seri.Token{Kind: seri.TokenEOF, Pos: start}, nil
	}

	ch := l.peek()
	switch {
	case unicode.IsLetter(ch) || ch == '_':
		return l.scanWord(start), nil
	case isDigit(ch):
		return l.scanNumber(start)
	case ch == '"':
		return l.scanString(start)
	case ch == ':' || ch == ',':
		l.advance()
		return seri.Token{Kind: seri.TokenPunct, Text: string(ch), Pos: start}, nil
	default:
		return seri.Token{}, &seri.LexError{Pos: start, Char: ch, Err: seri.ErrUnexpectedChar}
	}
}

// scanWord collects a keyword or identifier. Hyphens are allowed after the
// first rune so language tags such as pt-BR lex as one identifier.
func (l *Lexer) scanWord(start seri.Position) seri.Token {
	from := l.pos
	for !l.atEnd() {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			break
		}
		l.advance()
	}
	word := string(l.src[from:l.pos])
	kind := seri.TokenIdentifier
	if keywords[word] {
		kind = seri.TokenKeyword
	}
	return seri.Token{Kind: kind, Text: word, Pos: start}
}

// scanNumber collects a time literal (H:MM or HH:MM) or a duration literal
// (45m, 2h, 1h30m). A bare number is malformed.
func (l *Lexer) scanNumber(start seri.Position) (seri.Token, error) {
	n, err := l.scanDigits()
	if err != nil {
		return seri.Token{}, err
	}
	switch l.peek() {
	case ':':
		if !isDigit(l.peekAt(1)) {
			break
		}
		l.advance() // :
		minStart := l.position()
		digits := l.pos
		m, err := l.scanDigits()
		if err != nil {
			return seri.Token{}, err
		}
		if l.pos-digits != 2 {
			return seri.Token{}, l.malformed(minStart, "minutes must have two digits")
		}
		if n > 23 {
			return seri.Token{}, l.malformed(start, "hour must be between 0 and 23")
		}
		if m > 59 {
			return seri.Token{}, l.malformed(minStart, "minute must be between 0 and 59")
		}
		if err := l.requireBoundary("time"); err != nil {
			return seri.Token{}, err
		}
		return seri.Token{Kind: seri.TokenTime, Time: seri.NewTimeOfDay(n, m), Pos: start}, nil
	case 'h', 'm':
		return l.scanDuration(start, n)
	}
	return seri.Token{}, l.malformed(l.position(), "number must be a time (HH:MM) or a duration (45m, 2h, 1h30m)")
}

// scanDuration continues a duration literal whose first number n has been
// consumed. An hour component may be followed by a minute component.
func (l *Lexer) scanDuration(start seri.Position, n int) (seri.Token, error) {
	var d time.Duration
	if l.peek() == 'h' {
		l.advance()
		d = time.Duration(n) * time.Hour
		if !isDigit(l.peek()) {
			if err := l.requireBoundary("duration"); err != nil {
				return seri.Token{}, err
			}
			if d > maxDuration {
				return seri.Token{}, l.malformed(start, "duration must not exceed 24h")
			}
			return seri.Token{Kind: seri.TokenDuration, Duration: d, Pos: start}, nil
		}
		var err error
		if n, err = l.scanDigits(); err != nil {
			return seri.Token{}, err
		}
		if l.peek() != 'm' {
			return seri.Token{}, l.malformed(l.position(), "expected m after minutes")
		}
	}
	l.advance() // m
	d += time.Duration(n) * time.Minute
	if d > maxDuration {
		return seri.Token{}, l.malformed(start, "duration must not exceed 24h")
	}
	if err := l.requireBoundary("duration"); err != nil {
		return seri.Token{}, err
	}
	return seri.Token{Kind: seri.TokenDuration, Duration: d, Pos: start}, nil
}

// requireBoundary rejects literals glued to following letters or digits,
// such as 30min or 10:000.
func (l *Lexer) requireBoundary(what string) error {
	r := l.peek()
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return l.malformed(l.position(), "unexpected character after "+what)
	}
	return nil
}

const (
	maxDigits   = 4
	maxDuration = 24 * time.Hour
)

// scanDigits reads a run of digits. Runs longer than maxDigits are rejected
// so that no literal can overflow a time.Duration.
func (l *Lexer) scanDigits() (int, error) {
	start := l.position()
	n, count := 0, 0
	for isDigit(l.peek()) {
		n = n*10 + int(l.advance()-'0')
		count++
		if count > maxDigits {
			return 0, l.malformed(start, "number out of range")
		}
	}
	return n, nil
}

// scanString collects a double-quoted string. Strings may span lines and
// support the escapes \" \\ \n and \t.
func (l *Lexer) scanString(start seri.Position) (seri.Token, error) {
	l.advance() // opening "
	var b strings.Builder
	for !l.atEnd() {
		r := l.advance()
		switch r {
		case '"':
			return seri.Token{Kind: seri.TokenString, Text: b.String(), Pos: start}, nil
		case '\\':
			escPos := l.position()
			switch next := l.advance(); next {
			case '"', '\\':
				b.WriteRune(next)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return seri.Token{}, &seri.LexError{
					Pos: escPos, Char: next, Detail: "unknown escape sequence", Err: seri.ErrMalformedLiteral,
				}
			}
		default:
			b.WriteRune(r)
		}
	}
	return seri.Token{}, &seri.LexError{Pos: start, Detail: "unterminated string", Err: seri.ErrMalformedLiteral}
}

func (l *Lexer) malformed(pos seri.Position, detail string) error {
	var ch rune
	if p := l.indexOf(pos); p < len(l.src) {
		ch = l.src[p]
	}
	return &seri.LexError{Pos: pos, Char: ch, Detail: detail, Err: seri.ErrMalformedLiteral}
}

// indexOf maps a position on the current line back to a rune index. Literals
// never span lines, so walking back from pos is enough.
func (l *Lexer) indexOf(pos seri.Position) int {
	if pos.Line != l.line {
		return l.pos
	}
	return l.pos - (l.col - pos.Column)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Tokens drains a fresh lexer over src, returning every token including the
// final EOF token.
func Tokens(src string) ([]seri.Token, error) {
	l := NewLexer(src)
	var toks []seri.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == seri.TokenEOF {
			return toks, nil
		}
	}
}
