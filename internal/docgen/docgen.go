// Package docgen renders function documentation as markdown.
package docgen

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"ghostc/internal/ast"
	"ghostc/internal/types"
)

// Module is a parsed module with its display name.
type Module struct {
	Name string
	AST  *ast.Module
}

// Entry documents one function.
type Entry struct {
	Name      string
	Signature string
	Extern    bool
	Docs      []string
}

// Entries lists the documented surface of mod: every declared function
// and every extern, in name order. Doc comments on a declaration come
// before those on its definition.
func Entries(mod *ast.Module) []Entry {
	out := make([]Entry, 0, len(mod.FnDecls)+len(mod.Externs))
	for name, decl := range mod.FnDecls {
		defn, hasDefn := mod.FnDefns[name]
		e := Entry{Name: name, Docs: append([]string(nil), decl.Docs...)}
		var params []string
		if hasDefn {
			e.Docs = append(e.Docs, defn.Docs...)
			for _, p := range defn.Fn.Params {
				params = append(params, p.Last())
			}
		}
		e.Signature = signature(name, decl.Type.ParamTypes(), params, decl.Type.Result())
		out = append(out, e)
	}
	for name, ext := range mod.Externs {
		pts := make([]types.Type, len(ext.Params))
		names := make([]string, len(ext.Params))
		for i, p := range ext.Params {
			pts[i], names[i] = p.Type, p.Name
		}
		out = append(out, Entry{
			Name:      name,
			Signature: signature(name, pts, names, ext.Ret),
			Extern:    true,
			Docs:      append([]string(nil), ext.Docs...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// signature spells `name(a: T, b: U) R`; missing parameter names become argN.
func signature(name string, params []types.Type, names []string, ret types.Type) string {
	parts := make([]string, len(params))
	for i, pt := range params {
		pname := fmt.Sprintf("arg%d", i)
		if i < len(names) && names[i] != "" {
			pname = names[i]
		}
		parts[i] = pname + ": " + pt.String()
	}
	return fmt.Sprintf("%s(%s) %s", name, strings.Join(parts, ", "), ret)
}

// Write renders every module as a markdown section. Modules are written in
// the given order.
func Write(w io.Writer, modules []Module) error {
	var b strings.Builder
	for i, m := range modules {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n", m.Name)
		for _, e := range Entries(m.AST) {
			b.WriteString("\n## ")
			if e.Extern {
				b.WriteString("extern ")
			}
			fmt.Fprintf(&b, "`%s`\n", e.Signature)
			if len(e.Docs) > 0 {
				b.WriteString("\n")
				for _, line := range e.Docs {
					b.WriteString(line)
					b.WriteString("\n")
				}
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
