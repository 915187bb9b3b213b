// Package json stores the schedule intermediate representation as JSON.
// The format is a versioned envelope; documents dumped with MarshalSchedule
// can be compiled again through Parser.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/seri"
)

// version is the current envelope version.
const version = 1

// envelope is the v1 wire format for a schedule.
type envelope struct {
	Version int      `json:"version"`
	Days    []dayDTO `json:"days"`
}

// MarshalSchedule serializes a Schedule to JSON in v1 envelope format.
func MarshalSchedule(s seri.Schedule) ([]byte, error) {
	env := envelope{
		Version: version,
		Days:    make([]dayDTO, len(s.Days)),
	}
	for i, d := range s.Days {
		dto, err := marshalDay(d)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		env.Days[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSchedule deserializes a Schedule from JSON in v1 envelope
// format.
func UnmarshalSchedule(data []byte) (seri.Schedule, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return seri.Schedule{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return seri.Schedule{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	var s seri.Schedule
	if len(env.Days) > 0 {
		s.Days = make([]seri.Day, len(env.Days))
	}
	for i, dto := range env.Days {
		d, err := unmarshalDay(dto)
		if err != nil {
			return seri.Schedule{}, fmt.Errorf("day %d: %w", i+1, err)
		}
		s.Days[i] = d
	}
	return s, nil
}

// Save writes a Schedule to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, s seri.Schedule) error {
	data, err := MarshalSchedule(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Schedule from a JSON file.
func Load(path string) (seri.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seri.Schedule{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSchedule(data)
}

// Interface compliance check.
var _ seri.Parser = (*Parser)(nil)

// Parser implements seri.Parser for JSON-encoded schedules, so a dumped
// intermediate representation can be fed back through the passes and
// renderers.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser { return &Parser{} }

// Parse decodes src as a v1 envelope.
func (*Parser) Parse(src string) (seri.Schedule, error) {
	return UnmarshalSchedule([]byte(src))
}
