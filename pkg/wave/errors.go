package wave

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// StructuralError reports a token sequence whose declaration or timeline
// structure is corrupt: a variable declared outside any scope, a value change
// recorded before any timestamp, or a change whose id-code matches no
// declaration. Reconstruction aborts rather than repair such input, since a
// best-effort result would be wrong, not merely incomplete.
type StructuralError struct {
	TokenIndex int
	Kind       vcd.Kind
	Reason     string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("wave: structural fault at token %d (%s): %s", e.TokenIndex, e.Kind, e.Reason)
}

func structuralErr(tok vcd.Token, format string, args ...interface{}) error {
	return &StructuralError{
		TokenIndex: tok.Index,
		Kind:       tok.Kind,
		Reason:     fmt.Sprintf(format, args...),
	}
}
