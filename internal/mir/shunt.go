package mir

// ShuntingYard converts an infix stream into postfix order.
// Operands pass straight through; an incoming operator first flushes every
// stacked operator of greater or equal precedence, so equal levels fold to
// the left. Right-associative chains must be parenthesized by the producer.
func ShuntingYard(infix Stream) Stream {
	out := make(Stream, 0, len(infix))
	var ops []Expression
	for _, e := range infix {
		switch {
		case e.Kind == ExprLiteral:
			out = append(out, e)
		case e.Kind == ExprLParen:
			ops = append(ops, e)
		case e.Kind == ExprRParen:
			for len(ops) > 0 && ops[len(ops)-1].Kind != ExprLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) > 0 {
				ops = ops[:len(ops)-1] // '('
			}
		case e.IsOperator():
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == ExprLParen || e.Precedence() > top.Precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, e)
		}
	}
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind != ExprLParen {
			out = append(out, ops[i])
		}
	}
	return out
}

// Valid reports whether s is a well-formed postfix stream yielding at most
// one value.
func (s Stream) Valid() bool {
	depth := 0
	for _, e := range s {
		switch {
		case e.Kind == ExprLiteral:
			depth++
		case e.IsOperator():
			if depth < 2 {
				return false
			}
			depth--
		default:
			return false
		}
	}
	return depth <= 1
}
