package spawn

import (
	"math/rand"
	"sort"
)

// Weighted is one choice in a Picker.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Picker chooses among values in proportion to their weight.
type Picker[T any] struct {
	choices []Weighted[T]
	total   int
}

// NewPicker builds a picker. Entries with non-positive weight are ignored.
func NewPicker[T any](choices ...Weighted[T]) Picker[T] {
	p := Picker[T]{}
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		p.choices = append(p.choices, c)
		p.total += c.Weight
	}
	return p
}

// Uniform builds a picker where every value has weight 1. Repeating a value
// raises its odds.
func Uniform[T any](values ...T) Picker[T] {
	choices := make([]Weighted[T], len(values))
	for i, v := range values {
		choices[i] = Weighted[T]{Value: v, Weight: 1}
	}
	return NewPicker(choices...)
}

// Empty reports whether the picker has nothing to choose from.
func (p Picker[T]) Empty() bool {
	return p.total == 0
}

// Pick returns a weighted random value. An empty picker returns the zero value and false.
func (p Picker[T]) Pick(rng *rand.Rand) (T, bool) {
	var zero T
	if p.total == 0 {
		return zero, false
	}
	r := rng.Intn(p.total)
	for _, c := range p.choices {
		if r < c.Weight {
			return c.Value, true
		}
		r -= c.Weight
	}
	return zero, false
}

// Gate unlocks a set of choices from MinWave on.
type Gate[T any] struct {
	MinWave int
	Choices Picker[T]
}

// Pool selects from the highest gate whose MinWave has been reached.
type Pool[T any] struct {
	gates []Gate[T]
}

// NewPool builds a pool from gates in any order.
func NewPool[T any](gates ...Gate[T]) Pool[T] {
	sorted := append([]Gate[T](nil), gates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinWave < sorted[j].MinWave
	})
	return Pool[T]{gates: sorted}
}

// For returns the picker active on wave.
func (p Pool[T]) For(wave int) Picker[T] {
	var active Picker[T]
	for _, g := range p.gates {
		if g.MinWave > wave {
			break
		}
		active = g.Choices
	}
	return active
}

// Pick chooses a value for wave.
func (p Pool[T]) Pick(rng *rand.Rand, wave int) (T, bool) {
	return p.For(wave).Pick(rng)
}
