package wave

import (
	"sort"
	"strings"
)

// Unknown is the placeholder symbol for a bit with no recorded value yet.
const Unknown = "X"

// ChannelEvent records the channel's composite value taking effect at Time.
type ChannelEvent struct {
	Time  uint64
	Value string
}

// Channel is one reconstructed logical signal. Multi-bit channels are
// recomposed from sibling per-bit declarations; Width is the number of
// siblings and each event's Value has one symbol per bit, highest declared
// bit index first. Events are strictly increasing in time and contain only
// genuine changes.
type Channel struct {
	Width  int
	Scope  string
	Name   string
	Events []ChannelEvent
}

// ValueAt returns the value of the latest event at or before t. Before the
// first event the channel reads as unknown across its full width.
func (c *Channel) ValueAt(t uint64) string {
	i := sort.Search(len(c.Events), func(i int) bool { return c.Events[i].Time > t })
	if i == 0 {
		return strings.Repeat(Unknown, c.Width)
	}
	return c.Events[i-1].Value
}

// NextEvent returns the first event strictly after t, if any.
func (c *Channel) NextEvent(t uint64) (ChannelEvent, bool) {
	i := sort.Search(len(c.Events), func(i int) bool { return c.Events[i].Time > t })
	if i >= len(c.Events) {
		return ChannelEvent{}, false
	}
	return c.Events[i], true
}

// reconstruct replays the timeline against one sibling group and produces the
// channel's change-only event sequence.
func reconstruct(siblings []Declaration, tl *Timeline) []ChannelEvent {
	// Descending bit-index order pins each bit to a deterministic buffer
	// slot regardless of declaration order: the highest bit index renders
	// first and the lowest last. Scalars (ScalarBit) occupy the only slot.
	sorted := make([]Declaration, len(siblings))
	copy(sorted, siblings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BitIndex > sorted[j].BitIndex })

	position := make(map[string]int, len(sorted))
	for i, decl := range sorted {
		position[decl.ID] = i
	}

	buffer := make([]string, len(sorted))
	for i := range buffer {
		buffer[i] = Unknown
	}

	var events []ChannelEvent
	for _, t := range tl.Times() {
		dirty := false
		for _, change := range tl.At(t) {
			pos, ok := position[change.ID]
			if !ok {
				continue
			}
			buffer[pos] = change.Value
			dirty = true
		}
		if dirty {
			events = append(events, ChannelEvent{Time: t, Value: strings.Join(buffer, "")})
		}
	}
	return events
}
