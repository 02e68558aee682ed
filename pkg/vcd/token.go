package vcd

import "fmt"

// Kind discriminates the token variants produced by the tokenizer.
type Kind int

const (
	KindComment Kind = iota
	KindDate
	KindVersion
	KindTimescale
	KindScope
	KindUpscope
	KindVar
	KindEndDefinitions
	KindDumpCommand
	KindTimestamp
	KindScalarChange
	KindVectorChange
	KindRealChange
	KindStringChange
)

// String returns the VCD keyword (or marker name) for the kind.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "$comment"
	case KindDate:
		return "$date"
	case KindVersion:
		return "$version"
	case KindTimescale:
		return "$timescale"
	case KindScope:
		return "$scope"
	case KindUpscope:
		return "$upscope"
	case KindVar:
		return "$var"
	case KindEndDefinitions:
		return "$enddefinitions"
	case KindDumpCommand:
		return "dump-command"
	case KindTimestamp:
		return "timestamp"
	case KindScalarChange:
		return "scalar-change"
	case KindVectorChange:
		return "vector-change"
	case KindRealChange:
		return "real-change"
	case KindStringChange:
		return "string-change"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ScopeDecl is the payload of a $scope token.
// Type is the scope kind from the dump (module, task, function, ...).
type ScopeDecl struct {
	Type  string
	Ident string
}

// VarDecl is the payload of a $var token. BitIndex is non-nil when the
// reference carries a single-bit select such as data[3]; vectors declared
// with a full range (data[7:0]) and plain scalars leave it nil.
type VarDecl struct {
	Type      string
	Size      int
	ID        string
	Reference string
	BitIndex  *int
}

// ScalarChange is the payload of a single-bit value change such as "1!".
type ScalarChange struct {
	ID    string
	Value byte
}

// VectorChange is the payload of a binary vector change such as "b1010 !".
type VectorChange struct {
	ID    string
	Value string
}

// RealChange is the payload of a real-number change such as "r1.5 !".
type RealChange struct {
	ID    string
	Value float64
}

// StringChange is the payload of a string change such as "sRUNNING !".
type StringChange struct {
	ID    string
	Value string
}

// Token is one typed element of a tokenized VCD stream. Kind selects which
// payload field is populated; all others are zero. Index is the token's
// ordinal position in the stream and is stable across re-tokenization of the
// same input.
type Token struct {
	Index int
	Kind  Kind

	Scope  *ScopeDecl
	Var    *VarDecl
	Time   uint64
	Scalar *ScalarChange
	Vector *VectorChange
	Real   *RealChange
	Str    *StringChange

	// Text carries the raw payload for $date, $version, $timescale and
	// $comment tokens, and the command name for dump-control markers.
	Text string
}
