package syntax

import (
	"strings"

	"github.com/fwojciec/seri"
	"golang.org/x/text/language"
)

// Interface compliance check.
var _ seri.Parser = (*Parser)(nil)

// Parser implements seri.Parser for Seri source text.
//
// Grammar:
//
//	document = { day | session } EOF
//	day      = "day" [ STRING ]
//	session  = kind STRING { header }
//	kind     = "talk" | "meal" | "break" | "fun" | "transport"
//	header   = "speakers" ":" STRING { "," STRING }
//	         | "time" ":" TIME
//	         | "duration" ":" DURATION
//	         | "abstract" ":" STRING
//	         | "lang" ":" IDENT
//
// Sessions that appear before the first "day" belong to an unlabeled day.
type Parser struct{}

// NewParser returns a Parser. It holds no state; every Parse call is
// independent.
func NewParser() *Parser { return &Parser{} }

// Parse parses src into a Schedule.
func (*Parser) Parse(src string) (seri.Schedule, error) {
	return Parse(src)
}

// Parse parses src into a Schedule, or returns the first *seri.LexError or
// *seri.ParseError encountered.
func Parse(src string) (seri.Schedule, error) {
	p := &parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return seri.Schedule{}, err
	}
	return p.parseDocument()
}

const headerList = "header (speakers, time, duration, abstract, lang)"

// parser is the state of one parse: the lexer and one token of lookahead.
type parser struct {
	lex *Lexer
	tok seri.Token
}

// next advances the lookahead by one token.
func (p *parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// expect consumes the current token if it has the given kind, otherwise it
// reports what was expected.
func (p *parser) expect(kind seri.TokenKind, expected string) (seri.Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.errorf(expected, seri.ErrUnexpectedToken)
	}
	return tok, p.next()
}

func (p *parser) errorf(expected string, err error) error {
	return &seri.ParseError{Pos: p.tok.Pos, Expected: expected, Found: p.tok, Err: err}
}

func (p *parser) parseDocument() (seri.Schedule, error) {
	var sched seri.Schedule
	for p.tok.Kind != seri.TokenEOF {
		switch {
		case p.tok.Is(seri.TokenKeyword, "day"):
			day, err := p.parseDayHeader()
			if err != nil {
				return seri.Schedule{}, err
			}
			sched.Days = append(sched.Days, day)

		case isKind(p.tok):
			sess, err := p.parseSession()
			if err != nil {
				return seri.Schedule{}, err
			}
			if len(sched.Days) == 0 {
				sched.Days = append(sched.Days, seri.Day{})
			}
			last := &sched.Days[len(sched.Days)-1]
			last.Sessions = append(last.Sessions, sess)

		case isHeader(p.tok):
			return seri.Schedule{}, p.errorf("session title line (talk \"...\")", seri.ErrMissingTitle)

		default:
			return seri.Schedule{}, p.errorf(`"day" or a session kind`, seri.ErrUnexpectedToken)
		}
	}
	return sched, nil
}

func (p *parser) parseDayHeader() (seri.Day, error) {
	if err := p.next(); err != nil { // day
		return seri.Day{}, err
	}
	var day seri.Day
	if p.tok.Kind == seri.TokenString {
		day.Label = p.tok.Text
		if err := p.next(); err != nil {
			return seri.Day{}, err
		}
	}
	return day, nil
}

func (p *parser) parseSession() (seri.Session, error) {
	sess := seri.Session{Kind: seri.Kind(p.tok.Text), Pos: p.tok.Pos}
	if err := p.next(); err != nil {
		return seri.Session{}, err
	}
	if p.tok.Kind != seri.TokenString {
		return seri.Session{}, p.errorf("session title string", seri.ErrMissingTitle)
	}
	if strings.TrimSpace(p.tok.Text) == "" {
		return seri.Session{}, p.errorf("non-empty session title", seri.ErrMissingTitle)
	}
	sess.Title = p.tok.Text
	if err := p.next(); err != nil {
		return seri.Session{}, err
	}

	seen := make(map[string]bool)
	for {
		switch {
		case isHeader(p.tok):
			name := p.tok.Text
			if seen[name] {
				return seri.Session{}, p.errorf("", seri.ErrDuplicateHeader)
			}
			seen[name] = true
			if err := p.parseHeader(name, &sess); err != nil {
				return seri.Session{}, err
			}
		case p.tok.Kind == seri.TokenIdentifier:
			return seri.Session{}, p.errorf(headerList, seri.ErrUnknownHeader)
		default:
			return sess, nil
		}
	}
}

// parseHeader parses `name ":" value` and stores the value in sess. The
// current token is the header keyword.
func (p *parser) parseHeader(name string, sess *seri.Session) error {
	if err := p.next(); err != nil {
		return err
	}
	if !p.tok.Is(seri.TokenPunct, ":") {
		return p.errorf(`":" after `+name, seri.ErrUnexpectedToken)
	}
	if err := p.next(); err != nil {
		return err
	}

	switch name {
	case "speakers":
		tok, err := p.expect(seri.TokenString, "speaker name string")
		if err != nil {
			return err
		}
		sess.Speakers = []seri.Speaker{seri.Speaker(tok.Text)}
		for p.tok.Is(seri.TokenPunct, ",") {
			if err := p.next(); err != nil {
				return err
			}
			tok, err := p.expect(seri.TokenString, "speaker name string")
			if err != nil {
				return err
			}
			sess.Speakers = append(sess.Speakers, seri.Speaker(tok.Text))
		}

	case "time":
		tok, err := p.expect(seri.TokenTime, "time (HH:MM)")
		if err != nil {
			return err
		}
		start := tok.Time
		sess.Start = &start

	case "duration":
		tok, err := p.expect(seri.TokenDuration, "duration (45m, 2h, 1h30m)")
		if err != nil {
			return err
		}
		d := tok.Duration
		sess.Duration = &d

	case "abstract":
		tok, err := p.expect(seri.TokenString, "abstract string")
		if err != nil {
			return err
		}
		text := dedent(tok.Text)
		sess.Abstract = &text

	case "lang":
		if p.tok.Kind != seri.TokenIdentifier {
			return p.errorf("language tag (en, fr, pt-BR)", seri.ErrUnexpectedToken)
		}
		tag, err := language.Parse(p.tok.Text)
		if err != nil {
			return p.errorf("language tag (en, fr, pt-BR)", seri.ErrInvalidValue)
		}
		sess.Lang = &tag
		return p.next()
	}
	return nil
}

func isKind(tok seri.Token) bool {
	if tok.Kind != seri.TokenKeyword {
		return false
	}
	for _, k := range seri.Kinds {
		if tok.Text == string(k) {
			return true
		}
	}
	return false
}

func isHeader(tok seri.Token) bool {
	if tok.Kind != seri.TokenKeyword {
		return false
	}
	switch tok.Text {
	case "speakers", "time", "duration", "abstract", "lang":
		return true
	}
	return false
}

// dedent trims surrounding blank space and removes the indentation shared
// by all non-blank continuation lines, so abstracts can be indented in the
// source without turning into markdown code blocks.
func dedent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	indent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) >= indent {
			lines[i] = lines[i][indent:]
		} else {
			lines[i] = strings.TrimLeft(lines[i], " \t")
		}
	}
	return strings.Join(lines, "\n")
}
