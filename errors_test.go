package seri_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/seri"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "lex error",
			err:  &seri.LexError{Pos: seri.Position{Line: 2, Column: 7}, Char: '@', Err: seri.ErrUnexpectedChar},
			want: `2:7: unexpected character '@'`,
		},
		{
			name: "lex error at end of input with detail",
			err:  &seri.LexError{Pos: seri.Position{Line: 1, Column: 1}, Detail: "unterminated string", Err: seri.ErrMalformedLiteral},
			want: `1:1: malformed literal at end of input: unterminated string`,
		},
		{
			name: "parse error",
			err: &seri.ParseError{
				Pos:      seri.Position{Line: 3, Column: 1},
				Expected: "session title string",
				Found:    seri.Token{Kind: seri.TokenEOF},
				Err:      seri.ErrMissingTitle,
			},
			want: `3:1: missing title: expected session title string, found end of input`,
		},
		{
			name: "parse error without expectation",
			err: &seri.ParseError{
				Pos:   seri.Position{Line: 4, Column: 3},
				Found: seri.Token{Kind: seri.TokenKeyword, Text: "time"},
				Err:   seri.ErrDuplicateHeader,
			},
			want: `4:3: duplicate header: keyword "time"`,
		},
		{
			name: "semantic error naming two sessions",
			err: &seri.SemanticError{
				Day:      1,
				DayLabel: "2024-11-06",
				Session:  seri.Session{Kind: seri.KindTalk, Title: "B", Pos: seri.Position{Line: 5, Column: 1}},
				Other:    &seri.Session{Kind: seri.KindTalk, Title: "A"},
				Detail:   "10:30-11:00 overlaps 10:00-11:00",
				Err:      seri.ErrOverlap,
			},
			want: `5:1: day 1 (2024-11-06): sessions overlap: talk "B" and talk "A": 10:30-11:00 overlaps 10:00-11:00`,
		},
		{
			name: "semantic error for untitled session",
			err: &seri.SemanticError{
				Day:     2,
				Session: seri.Session{Kind: seri.KindMeal, Pos: seri.Position{Line: 1, Column: 1}},
				Err:     seri.ErrMissingTitle,
			},
			want: `1:1: day 2: missing title: untitled meal`,
		},
		{
			name: "render error",
			err:  &seri.RenderError{Format: seri.FormatHTML, Detail: "no {{ CALENDAR }} in template", Err: seri.ErrMissingPlaceholder},
			want: `html: template missing insertion point: no {{ CALENDAR }} in template`,
		},
		{
			name: "render error with session",
			err: &seri.RenderError{
				Format:  seri.FormatTikZ,
				Session: &seri.Session{Kind: seri.KindFun, Title: "Hike", Pos: seri.Position{Line: 9, Column: 1}},
				Err:     seri.ErrUnscheduled,
			},
			want: `9:1: tikz: session not scheduled: fun "Hike"`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, &seri.LexError{Err: seri.ErrMalformedLiteral}, seri.ErrMalformedLiteral)
	assert.ErrorIs(t, &seri.ParseError{Err: seri.ErrUnknownHeader}, seri.ErrUnknownHeader)
	assert.ErrorIs(t, &seri.SemanticError{Err: seri.ErrOutOfOrder}, seri.ErrOutOfOrder)
	assert.ErrorIs(t, &seri.RenderError{Err: seri.ErrUnscheduled}, seri.ErrUnscheduled)
	assert.False(t, errors.Is(&seri.ParseError{Err: seri.ErrUnknownHeader}, seri.ErrDuplicateHeader))
}

func TestErrorPosition(t *testing.T) {
	t.Parallel()

	pos := seri.Position{Line: 3, Column: 4}

	tests := []struct {
		name string
		err  error
		want seri.Position
		ok   bool
	}{
		{"lex", &seri.LexError{Pos: pos}, pos, true},
		{"parse wrapped", fmt.Errorf("input.seri: %w", &seri.ParseError{Pos: pos}), pos, true},
		{"semantic", &seri.SemanticError{Session: seri.Session{Pos: pos}}, pos, true},
		{"semantic without position", &seri.SemanticError{}, seri.Position{}, false},
		{"render with session", &seri.RenderError{Session: &seri.Session{Pos: pos}}, pos, true},
		{"render without session", &seri.RenderError{}, seri.Position{}, false},
		{"plain", errors.New("boom"), seri.Position{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := seri.ErrorPosition(tc.err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
