package wave

import (
	"fmt"
	"time"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// Simulation is the read-only result of reconstructing a waveform dump:
// every logical channel with its full value history, plus the dump's header
// metadata.
type Simulation struct {
	Channels []Channel

	// Raw $date and $timescale payloads; empty when the dump omits them.
	Date      string
	Timescale string
}

// ParsedDate decodes the $date header.
func (s *Simulation) ParsedDate() (time.Time, error) {
	return vcd.ParseDate(s.Date)
}

// ParsedTimescale decodes the $timescale header.
func (s *Simulation) ParsedTimescale() (vcd.Timescale, error) {
	return vcd.ParseTimescale(s.Timescale)
}

// Channel returns the first channel with the given name.
func (s *Simulation) Channel(name string) (*Channel, bool) {
	for i := range s.Channels {
		if s.Channels[i].Name == name {
			return &s.Channels[i], true
		}
	}
	return nil, false
}

// LastTime returns the latest event timestamp across all channels.
func (s *Simulation) LastTime() uint64 {
	var last uint64
	for i := range s.Channels {
		events := s.Channels[i].Events
		if n := len(events); n > 0 && events[n-1].Time > last {
			last = events[n-1].Time
		}
	}
	return last
}

// BuildSimulation reconstructs all channels from a token sequence. It builds
// the declaration index and the timeline in two independent passes, verifies
// that every change's id-code resolves to a declaration, and then replays the
// timeline once per (scope, reference) sibling group. Groups appear in
// declaration order.
func BuildSimulation(tokens []vcd.Token) (*Simulation, error) {
	ix, err := BuildDeclarationIndex(tokens)
	if err != nil {
		return nil, err
	}
	tl, err := BuildTimeline(tokens)
	if err != nil {
		return nil, err
	}
	if err := checkIDs(tokens, ix, tl); err != nil {
		return nil, err
	}

	sim := &Simulation{}
	for _, tok := range tokens {
		switch tok.Kind {
		case vcd.KindDate:
			sim.Date = tok.Text
		case vcd.KindTimescale:
			sim.Timescale = tok.Text
		}
	}

	for _, key := range ix.Groups() {
		group := ix.Group(key)
		siblings := make([]Declaration, 0, len(group))
		for _, decl := range group {
			siblings = append(siblings, decl)
		}
		sim.Channels = append(sim.Channels, Channel{
			Width:  len(siblings),
			Scope:  key.Scope,
			Name:   key.Reference,
			Events: reconstruct(siblings, tl),
		})
	}
	return sim, nil
}

// checkIDs verifies every recorded change resolves to a declared id-code.
func checkIDs(tokens []vcd.Token, ix *DeclarationIndex, tl *Timeline) error {
	for _, t := range tl.Times() {
		for _, change := range tl.At(t) {
			if !ix.HasID(change.ID) {
				return &StructuralError{
					TokenIndex: change.TokenIndex,
					Kind:       tokens[change.TokenIndex].Kind,
					Reason:     fmt.Sprintf("change references undeclared id-code %q", change.ID),
				}
			}
		}
	}
	return nil
}
