package insights

import (
	"math"
	"slices"
)

// mean is the arithmetic mean of present values. The mean of no values is 0.
type mean struct {
	sum float64
	n   int
}

// add includes v when it is present.
func (m *mean) add(v *float64) {
	if v != nil {
		m.addValue(*v)
	}
}

func (m *mean) addValue(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

// total sums present values.
func total(vs ...*float64) float64 {
	var s float64
	for _, v := range vs {
		if v != nil {
			s += *v
		}
	}
	return s
}

// round rounds to the given number of decimals, halves away from zero,
// the way SQL ROUND does for the daily trend series.
func round(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}

// roundInt rounds halves toward positive infinity.
func roundInt(x float64) int {
	return int(math.Floor(x + 0.5))
}

// buckets accumulates values of type A per day.
type buckets[A any] struct {
	by map[string]*A
}

func newBuckets[A any]() *buckets[A] {
	return &buckets[A]{by: make(map[string]*A)}
}

// at returns the accumulator of day, creating it on first use.
func (b *buckets[A]) at(day string) *A {
	acc, ok := b.by[day]
	if !ok {
		acc = new(A)
		b.by[day] = acc
	}
	return acc
}

// days returns the bucketed days in ascending order.
func (b *buckets[A]) days() []string {
	out := make([]string, 0, len(b.by))
	for d := range b.by {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
