package wave

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

func tokenize(t *testing.T, dump string) []vcd.Token {
	t.Helper()
	tokens, err := vcd.Tokenize(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	return tokens
}

func TestBuildDeclarationIndexNestedScopes(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! clock $end
$scope module cpu $end
$var wire 1 " enable $end
$upscope $end
$var wire 1 # reset $end
$upscope $end
`)
	index, err := BuildDeclarationIndex(tokens)
	if err != nil {
		t.Fatalf("BuildDeclarationIndex failed: %v", err)
	}

	if got := index.Scopes(); len(got) != 2 || got[0] != "top" || got[1] != "top.cpu" {
		t.Fatalf("scopes = %v", got)
	}
	if refs := index.References("top"); len(refs) != 2 || refs[0] != "clock" || refs[1] != "reset" {
		t.Fatalf("top references = %v", refs)
	}

	group := index.Group(GroupKey{Scope: "top.cpu", Reference: "enable"})
	decl, ok := group[ScalarBit]
	if !ok {
		t.Fatalf("enable declaration missing: %v", group)
	}
	if decl.ID != `"` || decl.Scope != "top.cpu" {
		t.Fatalf("enable declaration = %+v", decl)
	}

	groups := index.Groups()
	if len(groups) != 3 || groups[0].Reference != "clock" || groups[1].Reference != "enable" || groups[2].Reference != "reset" {
		t.Fatalf("group order = %v", groups)
	}
}

func TestBuildDeclarationIndexSiblingBits(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$var wire 1 ! data [1] $end
$var wire 1 " data [0] $end
$upscope $end
`)
	index, err := BuildDeclarationIndex(tokens)
	if err != nil {
		t.Fatalf("BuildDeclarationIndex failed: %v", err)
	}
	group := index.Group(GroupKey{Scope: "top", Reference: "data"})
	if len(group) != 2 {
		t.Fatalf("expected 2 sibling declarations, got %d", len(group))
	}
	if group[1].ID != "!" || group[0].ID != `"` {
		t.Fatalf("sibling ids = %v", group)
	}
	if !index.HasID("!") || !index.HasID(`"`) || index.HasID("#") {
		t.Fatalf("HasID lookup wrong")
	}
}

func TestVarOutsideScopeIsStructuralFault(t *testing.T) {
	tokens := tokenize(t, `$var wire 1 ! clock $end`)
	_, err := BuildDeclarationIndex(tokens)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if structural.TokenIndex != 0 || structural.Kind != vcd.KindVar {
		t.Fatalf("fault = %+v", structural)
	}
}

func TestUnbalancedUpscopeIsStructuralFault(t *testing.T) {
	tokens := tokenize(t, `
$scope module top $end
$upscope $end
$upscope $end
`)
	_, err := BuildDeclarationIndex(tokens)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if structural.Kind != vcd.KindUpscope {
		t.Fatalf("fault kind = %s", structural.Kind)
	}
}
