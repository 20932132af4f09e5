package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a deterministic, human-readable listing of m.
func Dump(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.Path)
	for _, ext := range m.Externs {
		params := make([]string, len(ext.Params))
		for i, p := range ext.Params {
			params[i] = p.Name + ": " + p.Type.String()
		}
		fmt.Fprintf(&b, "extern %s(%s) %s\n", ext.Name, strings.Join(params, ", "), ext.Ret)
	}
	for _, name := range m.ImportedNames() {
		fmt.Fprintf(&b, "import %s %s\n", name, m.Imported[name])
	}
	for _, name := range m.FunctionNames() {
		dumpFunction(&b, m.Functions[name])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpFunction(b *strings.Builder, f *Function) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	fmt.Fprintf(b, "\nfn %s(%s) %s:\n", f.Name, strings.Join(params, ", "), f.Ret)
	for _, st := range f.Block {
		switch st.Kind {
		case StmtExpr:
			fmt.Fprintf(b, "  expr %s: %s\n", st.Type, FormatStream(st.Value))
		case StmtDecl:
			fmt.Fprintf(b, "  decl %s %s\n", st.Name, st.Type)
		default:
			fmt.Fprintf(b, "  %s %s %s = %s\n", st.Kind, st.Name, st.Type, FormatStream(st.Value))
		}
	}
}

// FormatStream renders s space separated, e.g. `a:i32 2:i32 *`.
func FormatStream(s Stream) string {
	parts := make([]string, len(s))
	for i, e := range s {
		if e.Kind != ExprLiteral {
			parts[i] = e.Kind.String()
			continue
		}
		parts[i] = formatLiteral(e.Lit)
	}
	return strings.Join(parts, " ")
}

func formatLiteral(l Literal) string {
	switch l.Kind {
	case LitInt, LitFloat:
		return l.Value + ":" + l.Type.String()
	case LitIdent:
		if l.IsParam {
			return "%" + l.Value + ":" + l.Type.String()
		}
		return l.Value + ":" + l.Type.String()
	case LitString:
		return strconv.Quote(l.Value)
	case LitCall:
		args := make([]string, len(l.Call.Args))
		for i, a := range l.Call.Args {
			args[i] = FormatStream(a.Value)
		}
		return fmt.Sprintf("%s(%s):%s", l.Call.Name, strings.Join(args, "; "), l.Call.Ret)
	}
	return "?"
}
