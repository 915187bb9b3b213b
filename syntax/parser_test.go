package syntax_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const conference = `# SeriConf
day "2024-11-06"

talk "Opening"
  speakers: "Ada Lovelace"
  time: 09:00
  duration: 30m

break "Coffee"
  time: 09:30
  duration: 15m

talk "Type systems"
  speakers: "Alice", "Bob", "Carol"
  time: 09:45
  duration: 1h
  lang: fr
  abstract: "A tour of *types*.

    Second paragraph."

day "2024-11-07"

fun "Hike"
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty document has no days", func(t *testing.T) {
		t.Parallel()
		s, err := syntax.Parse("  # nothing\n")
		require.NoError(t, err)
		assert.Empty(t, s.Days)
	})

	t.Run("full document", func(t *testing.T) {
		t.Parallel()
		s, err := syntax.Parse(conference)
		require.NoError(t, err)
		require.Len(t, s.Days, 2)

		day := s.Days[0]
		assert.Equal(t, "2024-11-06", day.Label)
		require.Len(t, day.Sessions, 3)

		opening := day.Sessions[0]
		assert.Equal(t, seri.KindTalk, opening.Kind)
		assert.Equal(t, "Opening", opening.Title)
		assert.Equal(t, []seri.Speaker{"Ada Lovelace"}, opening.Speakers)
		require.NotNil(t, opening.Start)
		assert.Equal(t, seri.NewTimeOfDay(9, 0), *opening.Start)
		require.NotNil(t, opening.Duration)
		assert.Equal(t, 30*time.Minute, *opening.Duration)
		assert.Nil(t, opening.Abstract)
		assert.Nil(t, opening.Lang)
		assert.Equal(t, seri.Position{Line: 4, Column: 1}, opening.Pos)

		assert.Equal(t, seri.KindBreak, day.Sessions[1].Kind)
		assert.Empty(t, day.Sessions[1].Speakers)

		types := day.Sessions[2]
		assert.Equal(t, []seri.Speaker{"Alice", "Bob", "Carol"}, types.Speakers)
		require.NotNil(t, types.Lang)
		assert.Equal(t, language.French, *types.Lang)
		require.NotNil(t, types.Abstract)
		assert.Equal(t, "A tour of *types*.\n\nSecond paragraph.", *types.Abstract)

		hike := s.Days[1].Sessions[0]
		assert.Equal(t, seri.KindFun, hike.Kind)
		assert.False(t, hike.Scheduled())
	})

	t.Run("sessions before any day get an unlabeled day", func(t *testing.T) {
		t.Parallel()
		s, err := syntax.Parse("talk \"A\"\nday \"Second\"\ntalk \"B\"")
		require.NoError(t, err)
		require.Len(t, s.Days, 2)
		assert.Equal(t, "", s.Days[0].Label)
		assert.Equal(t, "A", s.Days[0].Sessions[0].Title)
		assert.Equal(t, "Second", s.Days[1].Label)
	})

	t.Run("day without label or sessions", func(t *testing.T) {
		t.Parallel()
		s, err := syntax.Parse("day\nday")
		require.NoError(t, err)
		require.Len(t, s.Days, 2)
		assert.Empty(t, s.Days[0].Sessions)
	})

	t.Run("headers in any order", func(t *testing.T) {
		t.Parallel()
		s, err := syntax.Parse(`meal "Lunch" duration: 1h time: 12:00`)
		require.NoError(t, err)
		end, ok := s.Days[0].Sessions[0].End()
		require.True(t, ok)
		assert.Equal(t, seri.NewTimeOfDay(13, 0), end)
	})

	t.Run("parser value is reusable", func(t *testing.T) {
		t.Parallel()
		p := syntax.NewParser()
		a, err := p.Parse(conference)
		require.NoError(t, err)
		b, err := p.Parse(conference)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		err   error
		pos   seri.Position
		found seri.TokenKind
	}{
		{
			name:  "duplicate header",
			src:   "talk \"A\"\n  time: 10:00\n  time: 11:00",
			err:   seri.ErrDuplicateHeader,
			pos:   seri.Position{Line: 3, Column: 3},
			found: seri.TokenKeyword,
		},
		{
			name:  "header without title line",
			src:   "day\n  speakers: \"Ada\"",
			err:   seri.ErrMissingTitle,
			pos:   seri.Position{Line: 2, Column: 3},
			found: seri.TokenKeyword,
		},
		{
			name:  "kind without title string",
			src:   "talk\n  time: 10:00",
			err:   seri.ErrMissingTitle,
			pos:   seri.Position{Line: 2, Column: 3},
			found: seri.TokenKeyword,
		},
		{
			name:  "empty title",
			src:   "day\ntalk \"\"",
			err:   seri.ErrMissingTitle,
			pos:   seri.Position{Line: 2, Column: 6},
			found: seri.TokenString,
		},
		{
			name:  "blank title",
			src:   "meal \" \t \"\n  time: 12:00",
			err:   seri.ErrMissingTitle,
			pos:   seri.Position{Line: 1, Column: 6},
			found: seri.TokenString,
		},
		{
			name:  "kind at end of input",
			src:   "talk",
			err:   seri.ErrMissingTitle,
			pos:   seri.Position{Line: 1, Column: 5},
			found: seri.TokenEOF,
		},
		{
			name:  "unknown header",
			src:   "talk \"A\"\n  room: \"B\"",
			err:   seri.ErrUnknownHeader,
			pos:   seri.Position{Line: 2, Column: 3},
			found: seri.TokenIdentifier,
		},
		{
			name:  "missing colon",
			src:   "talk \"A\" time 10:00",
			err:   seri.ErrUnexpectedToken,
			pos:   seri.Position{Line: 1, Column: 15},
			found: seri.TokenTime,
		},
		{
			name:  "duration where time expected",
			src:   "talk \"A\" time: 45m",
			err:   seri.ErrUnexpectedToken,
			pos:   seri.Position{Line: 1, Column: 16},
			found: seri.TokenDuration,
		},
		{
			name:  "trailing comma in speakers",
			src:   "talk \"A\" speakers: \"B\",",
			err:   seri.ErrUnexpectedToken,
			pos:   seri.Position{Line: 1, Column: 24},
			found: seri.TokenEOF,
		},
		{
			name:  "stray string at top level",
			src:   "\"floating\"",
			err:   seri.ErrUnexpectedToken,
			pos:   seri.Position{Line: 1, Column: 1},
			found: seri.TokenString,
		},
		{
			name:  "invalid language tag",
			src:   "talk \"A\" lang: abcdefghij",
			err:   seri.ErrInvalidValue,
			pos:   seri.Position{Line: 1, Column: 16},
			found: seri.TokenIdentifier,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := syntax.Parse(tc.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)

			var parseErr *seri.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.pos, parseErr.Pos)
			assert.Equal(t, tc.found, parseErr.Found.Kind)
		})
	}

	t.Run("lex errors pass through", func(t *testing.T) {
		t.Parallel()
		_, err := syntax.Parse("talk \"A\" time: 25:00")
		var lexErr *seri.LexError
		require.True(t, errors.As(err, &lexErr))
		assert.ErrorIs(t, err, seri.ErrMalformedLiteral)
	})

	t.Run("error message names expectation", func(t *testing.T) {
		t.Parallel()
		_, err := syntax.Parse("talk \"A\" time: 45m")
		require.Error(t, err)
		assert.Equal(t, `1:16: unexpected token: expected time (HH:MM), found duration 45m`, err.Error())
	})
}
