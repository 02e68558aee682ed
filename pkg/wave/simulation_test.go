package wave

import (
	"errors"
	"fmt"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

func TestBuildSimulationScalarChannel(t *testing.T) {
	tokens := tokenize(t, `
$date Wed Dec 3 10:15:30 2025 $end
$timescale 10 ns $end
$scope module top $end
$var wire 1 ! clock $end
$upscope $end
$enddefinitions $end
#0
0!
#10
1!
#20
0!
`)
	sim, err := BuildSimulation(tokens)
	if err != nil {
		t.Fatalf("BuildSimulation failed: %v", err)
	}

	if len(sim.Channels) != 1 {
		t.Fatalf("got %d channels, want 1", len(sim.Channels))
	}
	ch := sim.Channels[0]
	if ch.Scope != "top" || ch.Name != "clock" || ch.Width != 1 {
		t.Fatalf("channel = %+v", ch)
	}
	want := []ChannelEvent{{0, "0"}, {10, "1"}, {20, "0"}}
	if len(ch.Events) != len(want) {
		t.Fatalf("events = %v", ch.Events)
	}
	for i, ev := range want {
		if ch.Events[i] != ev {
			t.Fatalf("event %d = %+v, want %+v", i, ch.Events[i], ev)
		}
	}

	if sim.Timescale != "10 ns" {
		t.Fatalf("timescale = %q", sim.Timescale)
	}
	ts, err := sim.ParsedTimescale()
	if err != nil || ts.Magnitude != 10 || ts.Unit != "ns" {
		t.Fatalf("ParsedTimescale = %v, %v", ts, err)
	}
	date, err := sim.ParsedDate()
	if err != nil || date.Year() != 2025 {
		t.Fatalf("ParsedDate = %v, %v", date, err)
	}
	if sim.LastTime() != 20 {
		t.Fatalf("LastTime = %d", sim.LastTime())
	}
}

// A change touching only the low bit must update position 0 of the composite
// value and leave the high bit unknown.
func TestVectorChannelLowBitChange(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! data [1] $end
$var wire 1 " data [0] $end
$upscope $end
#5
1"
`)
	sim, err := BuildSimulation(tokens)
	if err != nil {
		t.Fatalf("BuildSimulation failed: %v", err)
	}
	ch := sim.Channels[0]
	if ch.Width != 2 {
		t.Fatalf("width = %d", ch.Width)
	}
	if len(ch.Events) != 1 || ch.Events[0].Time != 5 || ch.Events[0].Value != "X1" {
		t.Fatalf("events = %v", ch.Events)
	}
}

// Composite width equals the sibling count no matter the declaration order.
func TestVectorChannelMergeOrder(t *testing.T) {
	layouts := []string{
		"$var wire 1 ! data [1] $end\n$var wire 1 \" data [0] $end",
		"$var wire 1 \" data [0] $end\n$var wire 1 ! data [1] $end",
	}
	for _, decls := range layouts {
		tokens := tokenize(t, fmt.Sprintf(`
$scope module top $end
%s
$upscope $end
#0
0"
1!
#7
1"
`, decls))
		sim, err := BuildSimulation(tokens)
		if err != nil {
			t.Fatalf("BuildSimulation failed: %v", err)
		}
		ch := sim.Channels[0]
		if ch.Width != 2 {
			t.Fatalf("width = %d", ch.Width)
		}
		for _, ev := range ch.Events {
			if len(ev.Value) != 2 {
				t.Fatalf("composite value %q does not match width", ev.Value)
			}
		}
		want := []ChannelEvent{{0, "10"}, {7, "11"}}
		for i, ev := range want {
			if ch.Events[i] != ev {
				t.Fatalf("event %d = %+v, want %+v", i, ch.Events[i], ev)
			}
		}
	}
}

// Timestamps touching only other channels must not produce events.
func TestNoOpTimestampsElided(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! clock $end
$var wire 1 " enable $end
$upscope $end
#0
0!
0"
#10
1!
#20
1"
#30
0!
`)
	sim, err := BuildSimulation(tokens)
	if err != nil {
		t.Fatalf("BuildSimulation failed: %v", err)
	}
	enable, ok := sim.Channel("enable")
	if !ok {
		t.Fatalf("enable channel missing")
	}
	want := []ChannelEvent{{0, "0"}, {20, "1"}}
	if len(enable.Events) != len(want) {
		t.Fatalf("enable events = %v", enable.Events)
	}
	for i, ev := range want {
		if enable.Events[i] != ev {
			t.Fatalf("event %d = %+v, want %+v", i, enable.Events[i], ev)
		}
	}
	for i := 1; i < len(enable.Events); i++ {
		if enable.Events[i].Time <= enable.Events[i-1].Time {
			t.Fatalf("events not strictly increasing: %v", enable.Events)
		}
	}
}

func TestChannelsFollowDeclarationOrder(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! zulu $end
$var wire 1 " alpha $end
$upscope $end
`)
	sim, err := BuildSimulation(tokens)
	if err != nil {
		t.Fatalf("BuildSimulation failed: %v", err)
	}
	if sim.Channels[0].Name != "zulu" || sim.Channels[1].Name != "alpha" {
		t.Fatalf("channel order = %v, %v", sim.Channels[0].Name, sim.Channels[1].Name)
	}
}

func TestUndeclaredIDCodeIsStructuralFault(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! clock $end
$upscope $end
#0
0!
1%
`)
	_, err := BuildSimulation(tokens)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if structural.Kind != vcd.KindScalarChange {
		t.Fatalf("fault kind = %s", structural.Kind)
	}
	// tokens: scope, var, upscope, #0, 0!, 1%
	if structural.TokenIndex != 5 {
		t.Fatalf("fault token index = %d", structural.TokenIndex)
	}
}
