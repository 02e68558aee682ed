package vcd

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// VCDLexer defines the lexical structure of a value change dump.
// VCD is a whitespace-separated word format: declaration keywords start with
// '$', timestamps with '#', and everything else (identifiers, id-codes,
// value words) is a run of printable characters.
var VCDLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Whitespace separates every lexeme
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Declaration keywords ($scope, $var, $end, ...)
	{Name: "Keyword", Pattern: `\$[a-zA-Z]+`},

	// Timestamp markers (#0, #1250, ...)
	{Name: "Timestamp", Pattern: `#[0-9]+`},

	// Any other printable word: identifiers, sizes, id-codes ('!' through
	// '~', which includes '$' and '#' when not leading a keyword/timestamp),
	// scalar changes like "1!" and vector value words like "b1010".
	{Name: "Word", Pattern: `[!-~]+`},
})
