package iterate

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Sweep iterates every lane discard+retain times from x0 and records the
// last retain states. Row j holds the state after discard+j+1 applications,
// so Sweep(f, x0, 0, 1, {r}) is the single cell f(x0, r).
func Sweep(f dynamo.Recurrence, x0 float64, discard, retain int, rs dynamo.State, opts ...Option) (*Table, error) {
	if discard < 0 {
		return nil, dynamo.InvalidLength("sweep", "discard", discard)
	}
	if retain <= 0 {
		return nil, dynamo.InvalidLength("sweep", "retain", retain)
	}
	if discard > math.MaxInt-retain {
		return nil, dynamo.InvalidLength("sweep", "discard", discard)
	}
	if len(rs) == 0 {
		return nil, dynamo.ShapeMismatch("sweep", 1, 0)
	}

	o := buildOptions(opts)
	table := newTable(rs, retain, discard+1)

	dynamo.ParallelFor(len(rs), o.workers, o.minLanes, func(start, end int) {
		params := rs[start:end]
		lanes := dynamo.Fill(end-start, x0)

		for i := 0; i < discard+retain; i++ {
			lanes, _ = f.Apply(lanes, lanes, params)
			if i >= discard {
				table.setRow(i-discard, lanes, start)
			}
		}
	})

	return table, nil
}
