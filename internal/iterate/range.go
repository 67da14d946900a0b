package iterate

import (
	"github.com/san-kum/chaosmap/internal/dynamo"
)

// LinearRange returns count evenly spaced values from start to stop, both
// included. count == 1 yields [start].
func LinearRange(start, stop float64, count int) (dynamo.State, error) {
	if count <= 0 {
		return nil, dynamo.InvalidRangeCount("linear_range", count)
	}

	values := make(dynamo.State, count)
	values[0] = start
	if count == 1 {
		return values, nil
	}

	step := (stop - start) / float64(count-1)
	for i := 1; i < count-1; i++ {
		values[i] = start + float64(i)*step
	}
	values[count-1] = stop

	return values, nil
}
