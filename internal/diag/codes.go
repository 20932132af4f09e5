package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedDoc    Code = 1003
	LexBadNumber          Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedEOF      Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnsupported        Code = 2030
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102
	SynEmptyImportGroup   Code = 2106
	SynImportNotFound     Code = 2107
	SynImportNotFirst     Code = 2108

	// Семантические
	SemaInfo              Code = 3000
	SemaUndefinedIdent    Code = 3001
	SemaTypeMismatch      Code = 3002
	SemaMissingDecl       Code = 3003
	SemaArityMismatch     Code = 3004
	SemaArgTypeMismatch   Code = 3005
	SemaAssignUndeclared  Code = 3006
	SemaAssignParam       Code = 3007
	SemaDeclNotFunc       Code = 3008
	SemaMissingDefn       Code = 3009
	SemaReturnMismatch    Code = 3010
	SemaUnsupportedExpr   Code = 3011
	SemaDuplicateFunc     Code = 3012
	SemaInvalidLiteral    Code = 3013
	SemaUnsupportedType   Code = 3014
	SemaImportedNotFound  Code = 3015

	IOLoadFileError Code = 4001

	ProjInfo         Code = 5000
	ProjEntryMissing Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexUnterminatedDoc:    "Unterminated doc comment",
		LexBadNumber:          "Malformed number literal",

		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynUnexpectedEOF:      "Unexpected end of file",
		SynExpectType:         "Expected type",
		SynExpectExpression:   "Expected expression",
		SynUnclosedParen:      "Unclosed parenthesis",
		SynUnclosedBrace:      "Unclosed brace",
		SynUnclosedBracket:    "Unclosed bracket",
		SynUnsupported:        "Unsupported language feature",
		SynUnexpectedTopLevel: "Unexpected top-level statement",
		SynExpectIdentifier:   "Expected identifier",
		SynEmptyImportGroup:   "Empty import group",
		SynImportNotFound:     "Cannot resolve import",
		SynImportNotFirst:     "Import block must come first",

		SemaInfo:             "Semantic information",
		SemaUndefinedIdent:   "Undefined identifier",
		SemaTypeMismatch:     "Type mismatch",
		SemaMissingDecl:      "Definition without declaration",
		SemaArityMismatch:    "Arity mismatch",
		SemaArgTypeMismatch:  "Argument type mismatch",
		SemaAssignUndeclared: "Assignment to undeclared name",
		SemaAssignParam:      "Assignment to parameter",
		SemaDeclNotFunc:      "Declaration is not a function type",
		SemaMissingDefn:      "Declaration without definition",
		SemaReturnMismatch:   "Return type mismatch",
		SemaUnsupportedExpr:  "Unsupported expression",
		SemaDuplicateFunc:    "Duplicate function",
		SemaInvalidLiteral:   "Invalid literal",
		SemaUnsupportedType:  "Unsupported type",
		SemaImportedNotFound: "Imported function not found",

		IOLoadFileError: "I/O load file error",

		ProjInfo:         "Project information",
		ProjEntryMissing: "Entry module missing",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
