package metrics

import (
	"math"
)

// Observer accumulates a summary over recorded states.
type Observer interface {
	Name() string
	Observe(states []float64)
	Value() float64
	Reset()
}

// Bounded reports the fraction of observed states that stayed finite and
// within [Lo, Hi]. An orbit that escapes the unit interval counts against it.
type Bounded struct {
	Lo, Hi     float64
	violations int
	samples    int
}

func NewBounded(lo, hi float64) *Bounded {
	return &Bounded{Lo: lo, Hi: hi}
}

func (b *Bounded) Name() string { return "bounded" }

func (b *Bounded) Observe(states []float64) {
	for _, v := range states {
		b.samples++
		if math.IsNaN(v) || v < b.Lo || v > b.Hi {
			b.violations++
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}

// Mean is the running mean of finite observed states.
type Mean struct {
	sum     float64
	samples int
}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Observe(states []float64) {
	for _, v := range states {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		m.sum += v
		m.samples++
	}
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
