// Package timing renders reconstructed channels as tikztimingtable markup:
// for each channel one line of run-length "duration{symbol}" segments over a
// caller-supplied time window.
package timing

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Segment is one run-length interval over which a channel held Symbol.
type Segment struct {
	Duration uint64
	Symbol   string
}

func (s Segment) String() string {
	return fmt.Sprintf("%d{%s}", s.Duration, s.Symbol)
}

// Segments produces the run-length encoding of a channel over the half-open
// window [start, end). Segment durations sum to end-start exactly: a window
// opening before the first event is covered by the unknown symbol, and the
// last known value extends through the window's end. An empty window yields
// no segments. Consecutive segments never repeat a symbol because the
// channel's event sequence contains only genuine changes.
func Segments(ch *wave.Channel, start, end uint64) []Segment {
	var segments []Segment
	current := start
	value := ch.ValueAt(start)
	for current < end {
		next, ok := ch.NextEvent(current)
		segmentEnd := end
		if ok && next.Time < end {
			segmentEnd = next.Time
		}
		segments = append(segments, Segment{Duration: segmentEnd - current, Symbol: value})
		if !ok || next.Time >= end {
			break
		}
		value = next.Value
		current = next.Time
	}
	return segments
}

// Line formats one diagram row: the channel name, an ampersand, and the
// window's segments joined by spaces.
func Line(ch *wave.Channel, start, end uint64) string {
	parts := []string{ch.Name + " &"}
	for _, seg := range Segments(ch, start, end) {
		parts = append(parts, seg.String())
	}
	return strings.Join(parts, " ")
}

// Document renders a complete tikztimingtable over [start, end). When names
// is non-nil only channels whose name is a member are included; either way
// the simulation's channel order is preserved.
func Document(sim *wave.Simulation, start, end uint64, names []string) string {
	var filter map[string]bool
	if names != nil {
		filter = make(map[string]bool, len(names))
		for _, name := range names {
			filter[name] = true
		}
	}

	lines := []string{`\begin{tikztimingtable}`}
	for i := range sim.Channels {
		ch := &sim.Channels[i]
		if filter != nil && !filter[ch.Name] {
			continue
		}
		lines = append(lines, "\t"+Line(ch, start, end))
	}
	lines = append(lines, `\end{tikztimingtable}`)
	return strings.Join(lines, "\n")
}
