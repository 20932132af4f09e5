// Package fuzztests holds fuzz harnesses for the front end: bytes go
// through the lexer, the parser and the checker, and nothing may panic
// or hang.
//
// Сиды берутся из списка ниже и из всех *.gh под testdata/, если он есть.
package fuzztests
