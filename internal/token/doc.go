// Package token defines lexical token kinds for ghost sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace and // line comments never reach the token stream.
//   - ;doc comments; are real tokens (DocComment): the parser attaches them to
//     the next top-level declaration.
//   - Built-in type names (i32, string, void, ...) are identifiers.
//     They are recognized by the parser's type grammar, not the lexer.
package token
