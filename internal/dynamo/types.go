package dynamo

import (
	"math"
)

// State is an ordered, fixed-length batch of scalars. The same type carries
// lane states and the parameter values driving them.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every element is finite. Non-finite values are
// legal map output; this is only a convenience for callers that care.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fill returns a State of length n with every element set to v.
func Fill(n int, v float64) State {
	s := make(State, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Recurrence maps a state and a parameter to the next state.
type Recurrence func(x, r float64) float64

// Apply evaluates f element-wise over x and r and writes into dst.
//
// Shapes broadcast: equal lengths pair element-wise, and a batch of length 1
// on either side is reused for every element of the other. dst is reused
// when it has the right length (it may alias x); otherwise a new State is
// allocated.
func (f Recurrence) Apply(dst, x, r State) (State, error) {
	n, err := BroadcastLen(len(x), len(r))
	if err != nil {
		return nil, err
	}
	if len(dst) != n {
		dst = make(State, n)
	}

	switch {
	case len(x) == n && len(r) == n:
		for i := 0; i < n; i++ {
			dst[i] = f(x[i], r[i])
		}
	case len(x) == n:
		rv := r[0]
		for i := 0; i < n; i++ {
			dst[i] = f(x[i], rv)
		}
	default:
		xv := x[0]
		for i := 0; i < n; i++ {
			dst[i] = f(xv, r[i])
		}
	}
	return dst, nil
}

// BroadcastLen returns the element-wise result length for batches of the
// given sizes.
func BroadcastLen(xLen, rLen int) (int, error) {
	switch {
	case xLen == 0 || rLen == 0:
		return 0, ShapeMismatch("apply", xLen, rLen)
	case xLen == rLen:
		return xLen, nil
	case xLen == 1:
		return rLen, nil
	case rLen == 1:
		return xLen, nil
	}
	return 0, ShapeMismatch("apply", xLen, rLen)
}
