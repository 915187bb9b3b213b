package json

import (
	"fmt"
	"time"

	"github.com/fwojciec/seri"
	"golang.org/x/text/language"
)

type dayDTO struct {
	Label    string       `json:"label,omitempty"`
	Sessions []sessionDTO `json:"sessions"`
}

// sessionDTO is the JSON representation of a Session. Optional headers are
// pointers so that absence survives a round trip.
type sessionDTO struct {
	Kind     string       `json:"kind"`
	Title    string       `json:"title"`
	Speakers []string     `json:"speakers,omitempty"`
	Start    *string      `json:"start,omitempty"`
	Duration *string      `json:"duration,omitempty"`
	Abstract *string      `json:"abstract,omitempty"`
	Lang     *string      `json:"lang,omitempty"`
	Pos      *positionDTO `json:"pos,omitempty"`
}

type positionDTO struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func marshalDay(d seri.Day) (dayDTO, error) {
	dto := dayDTO{Label: d.Label, Sessions: make([]sessionDTO, len(d.Sessions))}
	for i, s := range d.Sessions {
		sd, err := marshalSession(s)
		if err != nil {
			return dayDTO{}, fmt.Errorf("session %d: %w", i+1, err)
		}
		dto.Sessions[i] = sd
	}
	return dto, nil
}

func marshalSession(s seri.Session) (sessionDTO, error) {
	if !validKind(s.Kind) {
		return sessionDTO{}, fmt.Errorf("unknown session kind: %q", s.Kind)
	}
	dto := sessionDTO{Kind: string(s.Kind), Title: s.Title}
	for _, sp := range s.Speakers {
		dto.Speakers = append(dto.Speakers, string(sp))
	}
	if s.Start != nil {
		v := s.Start.String()
		dto.Start = &v
	}
	if s.Duration != nil {
		v := seri.FormatDuration(*s.Duration)
		dto.Duration = &v
	}
	if s.Abstract != nil {
		v := *s.Abstract
		dto.Abstract = &v
	}
	if s.Lang != nil {
		v := s.Lang.String()
		dto.Lang = &v
	}
	if s.Pos != (seri.Position{}) {
		dto.Pos = &positionDTO{Line: s.Pos.Line, Column: s.Pos.Column}
	}
	return dto, nil
}

func unmarshalDay(dto dayDTO) (seri.Day, error) {
	d := seri.Day{Label: dto.Label}
	if len(dto.Sessions) > 0 {
		d.Sessions = make([]seri.Session, len(dto.Sessions))
	}
	for i, sd := range dto.Sessions {
		s, err := unmarshalSession(sd)
		if err != nil {
			return seri.Day{}, fmt.Errorf("session %d: %w", i+1, err)
		}
		d.Sessions[i] = s
	}
	return d, nil
}

func unmarshalSession(dto sessionDTO) (seri.Session, error) {
	kind := seri.Kind(dto.Kind)
	if !validKind(kind) {
		return seri.Session{}, fmt.Errorf("unknown session kind: %q", dto.Kind)
	}
	s := seri.Session{Kind: kind, Title: dto.Title}
	for _, sp := range dto.Speakers {
		s.Speakers = append(s.Speakers, seri.Speaker(sp))
	}
	if dto.Start != nil {
		t, err := time.Parse("15:04", *dto.Start)
		if err != nil {
			return seri.Session{}, fmt.Errorf("start %q: %w", *dto.Start, seri.ErrInvalidValue)
		}
		v := seri.NewTimeOfDay(t.Hour(), t.Minute())
		s.Start = &v
	}
	if dto.Duration != nil {
		d, err := time.ParseDuration(*dto.Duration)
		if err != nil || d < 0 || d%time.Minute != 0 {
			return seri.Session{}, fmt.Errorf("duration %q: %w", *dto.Duration, seri.ErrInvalidValue)
		}
		s.Duration = &d
	}
	if dto.Abstract != nil {
		v := *dto.Abstract
		s.Abstract = &v
	}
	if dto.Lang != nil {
		tag, err := language.Parse(*dto.Lang)
		if err != nil {
			return seri.Session{}, fmt.Errorf("lang %q: %w", *dto.Lang, seri.ErrInvalidValue)
		}
		s.Lang = &tag
	}
	if dto.Pos != nil {
		s.Pos = seri.Position{Line: dto.Pos.Line, Column: dto.Pos.Column}
	}
	return s, nil
}

func validKind(k seri.Kind) bool {
	for _, known := range seri.Kinds {
		if k == known {
			return true
		}
	}
	return false
}
