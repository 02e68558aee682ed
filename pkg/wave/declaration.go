package wave

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// ScalarBit is the bit-index slot used for declarations without a bit select.
const ScalarBit = -1

// Declaration is one declared variable: a scalar, a whole vector, or a
// single bit-slice of a logical channel.
type Declaration struct {
	Scope     string
	Reference string
	BitIndex  int // ScalarBit when the declaration carries no bit select
	ID        string
	Width     int
}

// DeclarationIndex maps scope name -> reference name -> bit index ->
// declaration, and remembers the order in which (scope, reference) groups
// first appeared so channel output is stable.
type DeclarationIndex struct {
	scopes map[string]map[string]map[int]Declaration
	groups []GroupKey
	ids    map[string]bool
}

// GroupKey identifies one logical channel: all declarations sharing a scope
// and reference name.
type GroupKey struct {
	Scope     string
	Reference string
}

// Groups returns the (scope, reference) groups in first-declaration order.
func (ix *DeclarationIndex) Groups() []GroupKey {
	out := make([]GroupKey, len(ix.groups))
	copy(out, ix.groups)
	return out
}

// Group returns the bit-index -> declaration mapping for one group.
func (ix *DeclarationIndex) Group(key GroupKey) map[int]Declaration {
	return ix.scopes[key.Scope][key.Reference]
}

// Scopes returns the declared scope names in sorted order.
func (ix *DeclarationIndex) Scopes() []string {
	out := make([]string, 0, len(ix.scopes))
	for scope := range ix.scopes {
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

// References returns the variable reference names of a scope in sorted order.
func (ix *DeclarationIndex) References(scope string) []string {
	refs := ix.scopes[scope]
	out := make([]string, 0, len(refs))
	for ref := range refs {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// HasID reports whether any declaration uses the given id-code.
func (ix *DeclarationIndex) HasID(id string) bool {
	return ix.ids[id]
}

// BuildDeclarationIndex folds the token sequence into a declaration index.
// Scopes nest: each $scope pushes onto a stack and the declaration's scope
// name is the dot-joined path; $upscope pops. A $var outside any scope, or
// an unbalanced $upscope, is a structural fault.
func BuildDeclarationIndex(tokens []vcd.Token) (*DeclarationIndex, error) {
	ix := &DeclarationIndex{
		scopes: make(map[string]map[string]map[int]Declaration),
		ids:    make(map[string]bool),
	}

	var stack []string
	for _, tok := range tokens {
		switch tok.Kind {
		case vcd.KindScope:
			stack = append(stack, tok.Scope.Ident)
		case vcd.KindUpscope:
			if len(stack) == 0 {
				return nil, structuralErr(tok, "$upscope without matching $scope")
			}
			stack = stack[:len(stack)-1]
		case vcd.KindVar:
			if len(stack) == 0 {
				return nil, structuralErr(tok, "variable %q declared outside any scope", tok.Var.Reference)
			}
			scope := strings.Join(stack, ".")
			bit := ScalarBit
			if tok.Var.BitIndex != nil {
				bit = *tok.Var.BitIndex
			}
			ix.insert(Declaration{
				Scope:     scope,
				Reference: tok.Var.Reference,
				BitIndex:  bit,
				ID:        tok.Var.ID,
				Width:     tok.Var.Size,
			})
		}
	}
	return ix, nil
}

func (ix *DeclarationIndex) insert(decl Declaration) {
	refs, ok := ix.scopes[decl.Scope]
	if !ok {
		refs = make(map[string]map[int]Declaration)
		ix.scopes[decl.Scope] = refs
	}
	bits, ok := refs[decl.Reference]
	if !ok {
		bits = make(map[int]Declaration)
		refs[decl.Reference] = bits
		ix.groups = append(ix.groups, GroupKey{Scope: decl.Scope, Reference: decl.Reference})
	}
	bits[decl.BitIndex] = decl
	ix.ids[decl.ID] = true
}
