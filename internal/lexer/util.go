package lexer

import "unicode"

const utf8RuneSelf = 0x80

// Идентификаторы: ASCII быстрым путём, остальное через unicode.
func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func isDec(b byte) bool { return '0' <= b && b <= '9' }

// try2 consumes a two-byte operator a b if it is next.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}

func (lx *Lexer) peekRune() (rune, int) { return lx.cursor.PeekRune() }

func (lx *Lexer) bumpRune() { lx.cursor.BumpRune() }

func (lx *Lexer) text(m Mark) string { return lx.cursor.Text(m) }
