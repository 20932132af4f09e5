package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident      // foo
	IntLit     // 42
	FloatLit   // 1.5
	StringLit  // "text"
	DocComment // ;text;

	KwFn     // fn
	KwExtern // extern
	KwImport // import
	KwStruct // struct
	KwEnum   // enum
	KwIf     // if
	KwMatch  // match

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Caret       // ^
	Percent     // %
	Bang        // !
	Assign      // =
	EqEq        // ==
	Colon       // :
	ColonAssign // :=
	Comma       // ,
	Dot         // .
	Arrow       // ->
	At          // @
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Ident:       "identifier",
	IntLit:      "integer literal",
	FloatLit:    "float literal",
	StringLit:   "string literal",
	DocComment:  "doc comment",
	KwFn:        "fn",
	KwExtern:    "extern",
	KwImport:    "import",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwIf:        "if",
	KwMatch:     "match",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Caret:       "^",
	Percent:     "%",
	Bang:        "!",
	Assign:      "=",
	EqEq:        "==",
	Colon:       ":",
	ColonAssign: ":=",
	Comma:       ",",
	Dot:         ".",
	Arrow:       "->",
	At:          "@",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
