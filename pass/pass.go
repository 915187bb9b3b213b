// Package pass provides the transformation and validation passes run
// between parsing and rendering.
//
// Every pass is stateless: Apply depends only on its argument, and passes
// that reorder anything work on a clone so the input is never mutated.
package pass

import (
	"github.com/fwojciec/seri"
)

// Pass names, as reported by Name and in SemanticError.Pass.
const (
	NameCompleteness = "completeness"
	NameOrderCheck   = "order-check"
	NameSort         = "sort"
	NameOverlap      = "overlap"
)

// Interface compliance checks.
var (
	_ seri.Pass = Completeness{}
	_ seri.Pass = OrderCheck{}
	_ seri.Pass = Sort{}
	_ seri.Pass = Overlap{}
)

// Options selects the optional behavior of the default pipeline.
type Options struct {
	// Strict requires every session to have a start time and a duration.
	Strict bool
	// Sort orders sessions by start time instead of rejecting documents
	// whose sessions are out of order.
	Sort bool
}

// Default returns the standard pipeline: completeness, then either sorting
// or the order check, then overlap detection.
func Default(opts Options) seri.Pipeline {
	var order seri.Pass = OrderCheck{}
	if opts.Sort {
		order = Sort{}
	}
	return seri.Pipeline{
		Completeness{Strict: opts.Strict},
		order,
		Overlap{},
	}
}

func semanticError(pass string, di int, day seri.Day, s seri.Session, err error) *seri.SemanticError {
	return &seri.SemanticError{
		Pass:     pass,
		Day:      di + 1,
		DayLabel: day.Label,
		Session:  s,
		Err:      err,
	}
}
