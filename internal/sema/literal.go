package sema

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"ghostc/internal/types"
)

// decodeString resolves escapes of a literal body and normalizes it to NFC,
// so equal-looking literals produce equal bytes.
func decodeString(raw string) (string, error) {
	s, err := strconv.Unquote(`"` + raw + `"`)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(s), nil
}

// digitsOf drops the '_' separators of a numeric literal.
func digitsOf(text string) string {
	return strings.ReplaceAll(text, "_", "")
}

// intFits reports whether the decimal text is representable in t.
func intFits(text string, t types.Type) bool {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return false
	}
	bits := int(t.Width)
	if bits == 0 {
		bits = 64
	}
	if t.Kind == types.KindUint {
		return n.Sign() >= 0 && n.BitLen() <= bits
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if n.Sign() < 0 {
		return new(big.Int).Neg(n).Cmp(limit) <= 0
	}
	return n.Cmp(limit) < 0
}
