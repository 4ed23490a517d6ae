package lexer

func (lx *lexer) comment() {
	for c := lx.curChr; c != nil && *c != '\n'; c = lx.curChr {
		lx.advance()
	}
}

func (lx *lexer) multilineComment() *diagnostic {
	lx.advance() // '/'
	lx.advance() // '*'

	for c := lx.curChr; c != nil; c = lx.curChr {
		if *c == '*' && isChr(lx.peek(), '/') {
			lx.advance()
			lx.advance()
			return nil
		}
		lx.advance()
	}
	return lx.error("unterminated multiline comment")
}
