// Package ast holds the syntax tree produced by the parser.
//
// Nodes are built once per file and are read-only afterwards: the checker
// receives modules by shared reference and never mutates them. Every node
// that can be the target of a diagnostic carries a source.Location.
package ast
