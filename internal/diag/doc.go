// Package diag defines the diagnostic model shared by the lexer, parser,
// resolver and checker.
//
// A Diagnostic has a Severity, a Code, a short Message, a primary
// source.Location and optional Notes. Codes are grouped by phase:
//
//   - LEX1xxx: lexical problems (bad characters, unterminated strings)
//   - SYN2xxx: syntax and import-resolution problems (ParseError)
//   - SEM3xxx: type checking (CheckError)
//   - IO4xxx / PRJ5xxx: file system and project manifest problems
//
// Producers emit through a Reporter; BagReporter collects into a Bag which
// supports limits, sorting and deduplication. Rendering lives in
// internal/diagfmt, this package never formats for humans.
package diag
