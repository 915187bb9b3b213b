package seri

import "fmt"

// Pass transforms or validates a Schedule. Apply must not mutate its input:
// it returns either the same value unchanged or a modified clone.
type Pass interface {
	Name() string
	Apply(s Schedule) (Schedule, error)
}

// PassFunc adapts a plain function to the Pass interface.
type PassFunc struct {
	PassName string
	Fn       func(Schedule) (Schedule, error)
}

// Name returns PassName.
func (p PassFunc) Name() string { return p.PassName }

// Apply calls Fn.
func (p PassFunc) Apply(s Schedule) (Schedule, error) { return p.Fn(s) }

// Pipeline is a fixed, ordered list of passes.
type Pipeline []Pass

// Run applies each pass to the output of the previous one and stops at the
// first error. After every pass the structural invariants are re-checked; a
// violation is reported as ErrInternal. onPass, when non-nil, is called with
// the result of each successful pass.
func (p Pipeline) Run(s Schedule, onPass func(name string, s Schedule)) (Schedule, error) {
	for _, pass := range p {
		out, err := pass.Apply(s)
		if err != nil {
			return Schedule{}, err
		}
		if err := out.Check(); err != nil {
			return Schedule{}, fmt.Errorf("after pass %s: %w", pass.Name(), err)
		}
		if onPass != nil {
			onPass(pass.Name(), out)
		}
		s = out
	}
	return s, nil
}

// Names returns the pass names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, pass := range p {
		names[i] = pass.Name()
	}
	return names
}

// Interface compliance check.
var _ Pass = PassFunc{}
