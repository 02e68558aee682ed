package vcd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timescale is the decoded payload of a $timescale declaration, e.g. "10 ns".
type Timescale struct {
	Magnitude int
	Unit      string
}

func (ts Timescale) String() string {
	return fmt.Sprintf("%d %s", ts.Magnitude, ts.Unit)
}

var timescaleUnits = map[string]bool{
	"s": true, "ms": true, "us": true, "ns": true, "ps": true, "fs": true,
}

// ParseTimescale decodes a raw $timescale payload. The magnitude and unit may
// be fused ("10ns") or separated ("10 ns"); magnitude must be 1, 10 or 100.
func ParseTimescale(s string) (Timescale, error) {
	fields := strings.Fields(s)
	var magnitude, unit string
	switch len(fields) {
	case 1:
		raw := fields[0]
		split := strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
		if split <= 0 {
			return Timescale{}, fmt.Errorf("vcd: malformed timescale %q", s)
		}
		magnitude, unit = raw[:split], raw[split:]
	case 2:
		magnitude, unit = fields[0], fields[1]
	default:
		return Timescale{}, fmt.Errorf("vcd: malformed timescale %q", s)
	}

	mag, err := strconv.Atoi(magnitude)
	if err != nil || (mag != 1 && mag != 10 && mag != 100) {
		return Timescale{}, fmt.Errorf("vcd: bad timescale magnitude %q", magnitude)
	}
	if !timescaleUnits[unit] {
		return Timescale{}, fmt.Errorf("vcd: bad timescale unit %q", unit)
	}
	return Timescale{Magnitude: mag, Unit: unit}, nil
}

// dateLayout matches the asctime-style stamps simulators write into $date.
const dateLayout = "Mon Jan 2 15:04:05 2006"

// ParseDate decodes a raw $date payload.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.Join(strings.Fields(s), " "))
	if err != nil {
		return time.Time{}, fmt.Errorf("vcd: bad date %q: %w", s, err)
	}
	return t, nil
}
