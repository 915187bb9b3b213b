package pass

import (
	"fmt"

	"github.com/fwojciec/seri"
)

// Overlap rejects two sessions on the same day whose [start, end)
// intervals intersect. A session ending exactly when another starts does
// not overlap it. Sessions missing a start or a duration are skipped.
type Overlap struct{}

// Name returns the pass name.
func (Overlap) Name() string { return NameOverlap }

// Apply returns s unchanged or an ErrOverlap *seri.SemanticError naming
// both sessions; Session is the later one in document order.
func (Overlap) Apply(s seri.Schedule) (seri.Schedule, error) {
	for di, day := range s.Days {
		for j, b := range day.Sessions {
			bEnd, ok := b.End()
			if !ok {
				continue
			}
			for i := range j {
				a := day.Sessions[i]
				aEnd, ok := a.End()
				if !ok {
					continue
				}
				if *a.Start < bEnd && *b.Start < aEnd {
					err := semanticError(NameOverlap, di, day, b, seri.ErrOverlap)
					err.Other = &a
					err.Detail = fmt.Sprintf("%s-%s overlaps %s-%s", *b.Start, bEnd, *a.Start, aEnd)
					return seri.Schedule{}, err
				}
			}
		}
	}
	return s, nil
}
