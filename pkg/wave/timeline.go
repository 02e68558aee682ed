package wave

import (
	"strconv"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// Change is one value-change event recorded at a timestamp. TokenIndex points
// back at the source token for fault reporting.
type Change struct {
	ID         string
	Value      string
	TokenIndex int
}

// Timeline maps each recorded timestamp to the changes logged at it, in
// source order. Iteration order is chronological: timestamps are kept in an
// explicit slice rather than relying on map iteration.
type Timeline struct {
	times   []uint64
	changes map[uint64][]Change
}

// Times returns the recorded timestamps in source (chronological) order.
func (tl *Timeline) Times() []uint64 {
	return tl.times
}

// At returns the changes recorded at a timestamp, in source order.
func (tl *Timeline) At(t uint64) []Change {
	return tl.changes[t]
}

// Last returns the final recorded timestamp, or 0 if nothing was recorded.
func (tl *Timeline) Last() uint64 {
	if len(tl.times) == 0 {
		return 0
	}
	return tl.times[len(tl.times)-1]
}

// BuildTimeline folds the token sequence into a timeline. Scalar, vector,
// real and string changes each qualify independently; a change before the
// first timestamp marker is a structural fault.
func BuildTimeline(tokens []vcd.Token) (*Timeline, error) {
	tl := &Timeline{changes: make(map[uint64][]Change)}
	var current uint64
	open := false

	for _, tok := range tokens {
		var change Change
		switch tok.Kind {
		case vcd.KindTimestamp:
			current = tok.Time
			if _, seen := tl.changes[current]; !seen {
				tl.times = append(tl.times, current)
			}
			tl.changes[current] = nil
			open = true
			continue
		case vcd.KindScalarChange:
			change = Change{ID: tok.Scalar.ID, Value: string(tok.Scalar.Value)}
		case vcd.KindVectorChange:
			change = Change{ID: tok.Vector.ID, Value: tok.Vector.Value}
		case vcd.KindRealChange:
			change = Change{ID: tok.Real.ID, Value: strconv.FormatFloat(tok.Real.Value, 'g', -1, 64)}
		case vcd.KindStringChange:
			change = Change{ID: tok.Str.ID, Value: tok.Str.Value}
		default:
			continue
		}
		if !open {
			return nil, structuralErr(tok, "value change for id %q before any timestamp marker", change.ID)
		}
		change.TokenIndex = tok.Index
		tl.changes[current] = append(tl.changes[current], change)
	}
	return tl, nil
}
