package pass

import (
	"fmt"
	"slices"

	"github.com/fwojciec/seri"
)

// OrderCheck rejects days whose timed sessions are not in non-decreasing
// start order. Sessions without a start time are ignored.
type OrderCheck struct{}

// Name returns the pass name.
func (OrderCheck) Name() string { return NameOrderCheck }

// Apply returns s unchanged or an ErrOutOfOrder *seri.SemanticError naming
// the first session that starts before its timed predecessor.
func (OrderCheck) Apply(s seri.Schedule) (seri.Schedule, error) {
	for di, day := range s.Days {
		var prev *seri.Session
		for i := range day.Sessions {
			sess := day.Sessions[i]
			if sess.Start == nil {
				continue
			}
			if prev != nil && *sess.Start < *prev.Start {
				err := semanticError(NameOrderCheck, di, day, sess, seri.ErrOutOfOrder)
				other := *prev
				err.Other = &other
				err.Detail = fmt.Sprintf("%s starts before %s", *sess.Start, *prev.Start)
				return seri.Schedule{}, err
			}
			prev = &day.Sessions[i]
		}
	}
	return s, nil
}

// Sort orders each day's sessions by start time. The sort is stable, so
// sessions with equal starts keep their document order, and sessions
// without a start follow all timed ones in document order.
type Sort struct{}

// Name returns the pass name.
func (Sort) Name() string { return NameSort }

// Apply returns a sorted clone of s. It never fails.
func (Sort) Apply(s seri.Schedule) (seri.Schedule, error) {
	out := s.Clone()
	for i := range out.Days {
		slices.SortStableFunc(out.Days[i].Sessions, compareStart)
	}
	return out, nil
}

func compareStart(a, b seri.Session) int {
	switch {
	case a.Start == nil && b.Start == nil:
		return 0
	case a.Start == nil:
		return 1
	case b.Start == nil:
		return -1
	default:
		return int(*a.Start) - int(*b.Start)
	}
}
