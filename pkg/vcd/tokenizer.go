package vcd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Tokenize reads a complete VCD stream and returns its typed token sequence.
// The returned slice is safe to iterate any number of times; each token's
// Index field records its position in the sequence.
func Tokenize(r io.Reader) ([]Token, error) {
	lx, err := VCDLexer.Lex("", r)
	if err != nil {
		return nil, fmt.Errorf("vcd: lexer init: %w", err)
	}

	symbols := VCDLexer.Symbols()
	tz := &tokenizer{
		lex:           lx,
		symWhitespace: symbols["Whitespace"],
		symKeyword:    symbols["Keyword"],
		symTimestamp:  symbols["Timestamp"],
	}

	var out []Token
	for {
		word, ok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tok, emit, err := tz.assemble(word)
		if err != nil {
			return nil, err
		}
		if emit {
			tok.Index = len(out)
			out = append(out, tok)
		}
	}
	return out, nil
}

type tokenizer struct {
	lex           lexer.Lexer
	symWhitespace lexer.TokenType
	symKeyword    lexer.TokenType
	symTimestamp  lexer.TokenType
}

// next returns the next non-whitespace lexeme, or ok=false at end of input.
func (tz *tokenizer) next() (lexer.Token, bool, error) {
	for {
		word, err := tz.lex.Next()
		if err != nil {
			return lexer.Token{}, false, fmt.Errorf("vcd: %w", err)
		}
		if word.EOF() {
			return lexer.Token{}, false, nil
		}
		if word.Type == tz.symWhitespace {
			continue
		}
		return word, true, nil
	}
}

// mustNext is next for contexts where end of input is malformed.
func (tz *tokenizer) mustNext(context string) (lexer.Token, error) {
	word, ok, err := tz.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if !ok {
		return lexer.Token{}, fmt.Errorf("vcd: unexpected end of input in %s", context)
	}
	return word, nil
}

func (tz *tokenizer) assemble(word lexer.Token) (Token, bool, error) {
	switch word.Type {
	case tz.symTimestamp:
		t, err := strconv.ParseUint(word.Value[1:], 10, 64)
		if err != nil {
			return Token{}, false, fmt.Errorf("vcd: %s: bad timestamp %q", word.Pos, word.Value)
		}
		return Token{Kind: KindTimestamp, Time: t}, true, nil
	case tz.symKeyword:
		return tz.assembleKeyword(word)
	default:
		return tz.assembleChange(word)
	}
}

func (tz *tokenizer) assembleKeyword(word lexer.Token) (Token, bool, error) {
	keyword := strings.ToLower(word.Value)
	switch keyword {
	case "$scope":
		scopeType, err := tz.mustNext("$scope")
		if err != nil {
			return Token{}, false, err
		}
		ident, err := tz.mustNext("$scope")
		if err != nil {
			return Token{}, false, err
		}
		if err := tz.expectEnd("$scope"); err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindScope, Scope: &ScopeDecl{Type: scopeType.Value, Ident: ident.Value}}, true, nil

	case "$upscope":
		if err := tz.expectEnd("$upscope"); err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindUpscope}, true, nil

	case "$var":
		return tz.assembleVar()

	case "$enddefinitions":
		if err := tz.expectEnd("$enddefinitions"); err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindEndDefinitions}, true, nil

	case "$date", "$version", "$timescale", "$comment":
		text, err := tz.collectUntilEnd(keyword)
		if err != nil {
			return Token{}, false, err
		}
		kind := map[string]Kind{
			"$date":      KindDate,
			"$version":   KindVersion,
			"$timescale": KindTimescale,
			"$comment":   KindComment,
		}[keyword]
		return Token{Kind: kind, Text: text}, true, nil

	case "$dumpvars", "$dumpall", "$dumpon", "$dumpoff":
		// The value changes inside the block arrive as ordinary change
		// tokens; the block's closing $end is skipped below.
		return Token{Kind: KindDumpCommand, Text: keyword}, true, nil

	case "$end":
		// Closes a dump-control block at the top level.
		return Token{}, false, nil

	default:
		return Token{}, false, fmt.Errorf("vcd: %s: unknown keyword %q", word.Pos, word.Value)
	}
}

func (tz *tokenizer) assembleVar() (Token, bool, error) {
	varType, err := tz.mustNext("$var")
	if err != nil {
		return Token{}, false, err
	}
	sizeWord, err := tz.mustNext("$var")
	if err != nil {
		return Token{}, false, err
	}
	size, err := strconv.Atoi(sizeWord.Value)
	if err != nil {
		return Token{}, false, fmt.Errorf("vcd: %s: bad variable size %q", sizeWord.Pos, sizeWord.Value)
	}
	id, err := tz.mustNext("$var")
	if err != nil {
		return Token{}, false, err
	}

	// The reference may span one or two words ("data[3]" or "data [3]").
	var refWords []string
	for {
		w, err := tz.mustNext("$var")
		if err != nil {
			return Token{}, false, err
		}
		if w.Type == tz.symKeyword && strings.EqualFold(w.Value, "$end") {
			break
		}
		refWords = append(refWords, w.Value)
	}
	if len(refWords) == 0 {
		return Token{}, false, fmt.Errorf("vcd: $var for id %q missing reference name", id.Value)
	}
	reference, bitIndex := parseReference(strings.Join(refWords, ""))

	return Token{Kind: KindVar, Var: &VarDecl{
		Type:      varType.Value,
		Size:      size,
		ID:        id.Value,
		Reference: reference,
		BitIndex:  bitIndex,
	}}, true, nil
}

// parseReference splits a trailing single-bit select off a reference name.
// "data[3]" yields ("data", 3); range selects like "data[7:0]" and plain
// names keep the whole string as the reference with no bit index.
func parseReference(ref string) (string, *int) {
	if !strings.HasSuffix(ref, "]") {
		return ref, nil
	}
	open := strings.LastIndexByte(ref, '[')
	if open <= 0 {
		return ref, nil
	}
	inner := ref[open+1 : len(ref)-1]
	if strings.ContainsRune(inner, ':') {
		return ref[:open], nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return ref, nil
	}
	return ref[:open], &n
}

func (tz *tokenizer) assembleChange(word lexer.Token) (Token, bool, error) {
	value := word.Value
	switch value[0] {
	case '0', '1', 'x', 'X', 'z', 'Z':
		if len(value) < 2 {
			return Token{}, false, fmt.Errorf("vcd: %s: scalar change %q missing id-code", word.Pos, value)
		}
		return Token{Kind: KindScalarChange, Scalar: &ScalarChange{ID: value[1:], Value: value[0]}}, true, nil

	case 'b', 'B':
		id, err := tz.mustNext("vector change")
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindVectorChange, Vector: &VectorChange{ID: id.Value, Value: value[1:]}}, true, nil

	case 'r', 'R':
		f, err := strconv.ParseFloat(value[1:], 64)
		if err != nil {
			return Token{}, false, fmt.Errorf("vcd: %s: bad real change %q", word.Pos, value)
		}
		id, err := tz.mustNext("real change")
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindRealChange, Real: &RealChange{ID: id.Value, Value: f}}, true, nil

	case 's', 'S':
		id, err := tz.mustNext("string change")
		if err != nil {
			return Token{}, false, err
		}
		return Token{Kind: KindStringChange, Str: &StringChange{ID: id.Value, Value: value[1:]}}, true, nil

	default:
		return Token{}, false, fmt.Errorf("vcd: %s: unexpected word %q", word.Pos, value)
	}
}

func (tz *tokenizer) expectEnd(context string) error {
	word, err := tz.mustNext(context)
	if err != nil {
		return err
	}
	if word.Type != tz.symKeyword || !strings.EqualFold(word.Value, "$end") {
		return fmt.Errorf("vcd: %s: expected $end after %s, got %q", word.Pos, context, word.Value)
	}
	return nil
}

func (tz *tokenizer) collectUntilEnd(context string) (string, error) {
	var words []string
	for {
		word, err := tz.mustNext(context)
		if err != nil {
			return "", err
		}
		if word.Type == tz.symKeyword && strings.EqualFold(word.Value, "$end") {
			return strings.Join(words, " "), nil
		}
		words = append(words, word.Value)
	}
}
