// Package graphtext implements a small human-readable textual dump format
// for graph.Program, parsed with github.com/alecthomas/participle/v2 in
// the same lexer+struct-tag style the teacher uses for its own language
// grammar (grammar/lexer.go, internal/parser/parser.go). It is a debugging
// and fixture-authoring convenience, not the wire format: internal/graph/codec
// remains the authority for anything persisted as graph.bin.
package graphtext

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Hex", Pattern: `0x[0-9a-fA-F]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[\[\],=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Document is the parsed form of a graphtext listing: one statement per
// source line, in the order the program's node list must follow (I1).
type Document struct {
	Pos   lexer.Position
	Lines []*Line `@@*`
}

// Line is a single statement: exactly one of its fields is populated.
type Line struct {
	Pos     lexer.Position
	Input   *InputStmt   `( @@`
	Const   *ConstStmt   `| @@`
	Op      *OpStmt      `| @@`
	Outputs *OutputsStmt `| @@ )`
}

// InputStmt declares the next node as an Input at the given slot:
// "input <slot>".
type InputStmt struct {
	Pos  lexer.Position
	Slot int `"input" @Int`
}

// ConstStmt declares the next node as a Constant: "const <decimal-or-hex>".
type ConstStmt struct {
	Pos   lexer.Position
	Value string `"const" @(Int|Hex)`
}

// OpStmt declares the next node as an Op: "op <name> <lhs> <rhs>".
type OpStmt struct {
	Pos  lexer.Position
	Name string `"op" @Ident`
	Lhs  int    `@Int`
	Rhs  int    `@Int`
}

// OutputsStmt declares the program's output list: "outputs [i, j, k]".
type OutputsStmt struct {
	Pos     lexer.Position
	Indices []int `"outputs" "[" ( @Int ( "," @Int )* )? "]"`
}

var parser = buildParser()

func buildParser() *participle.Parser[Document] {
	p, err := participle.Build[Document](
		participle.Lexer(textLexer),
		participle.Elide("Whitespace", "Comment"),
	)
	if err != nil {
		panic("graphtext: failed to build parser: " + err.Error())
	}
	return p
}

// Parse parses a graphtext listing into a Document.
func Parse(source string) (*Document, error) {
	return parser.ParseString("", source)
}
