package litua

// Parser wraps a Lexer with one token of lookahead and one routine per
// grammar production: no parser-generator library is used here, the
// token stream is consumed by hand.
type Parser struct {
	lex *Lexer
	src *Source

	hasPeek bool
	peekTok Token
	peekOK  bool
	peekErr error
}

func newParser(src *Source) *Parser {
	return &Parser{lex: NewLexer(src), src: src}
}

// Parse lexes and parses src in full, producing a DocumentTree ready to
// hand off to a Collaborator, or the first error either phase encountered.
func Parse(src *Source) (*DocumentTree, error) {
	p := newParser(src)
	content, err := p.parseElements(TokenEndOfFile)
	if err != nil {
		return nil, err
	}
	return newDocumentTree(src, content), nil
}

func (p *Parser) peek() (Token, bool, error) {
	if !p.hasPeek {
		p.peekTok, p.peekOK, p.peekErr = p.lex.Next()
		p.hasPeek = true
	}
	return p.peekTok, p.peekOK, p.peekErr
}

// next returns the current lookahead token (peeking first if needed) and
// discards it, so the following peek/next call pulls a fresh one.
func (p *Parser) next() (Token, bool, error) {
	tok, ok, err := p.peek()
	p.hasPeek = false
	return tok, ok, err
}

func (p *Parser) consume() {
	p.hasPeek = false
}

// parseElements consumes a content or argument-value sequence: a run of
// Text and nested function/raw-string elements, terminated by the given
// token type (TokenEndContent, TokenEndArgValue or, at the document's top
// level, TokenEndOfFile). It is the "content" production, generalized over
// its three call sites.
func (p *Parser) parseElements(term TokenType) ([]DocumentElement, error) {
	var elems []DocumentElement
	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, NewUnexpectedEOFError(0)
		}

		switch {
		case tok.Typ == term:
			p.consume()
			return elems, nil
		case tok.Typ == TokenText:
			p.consume()
			elems = append(elems, DocumentElement{Text: p.src.Slice(tok.Start, tok.End)})
		case tok.Typ == TokenBeginFunction:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			elems = append(elems, DocumentElement{Function: fn})
		case tok.Typ == TokenBeginRaw:
			fn, err := p.parseRaw(tok)
			if err != nil {
				return nil, err
			}
			elems = append(elems, DocumentElement{Function: fn})
		default:
			return nil, NewUnexpectedTokenError(tok, term.String())
		}
	}
}

// parseFunction is the "function" production: Call, then zero or more
// bracketed arguments, then either an immediate close or a Whitespace +
// content body + close.
func (p *Parser) parseFunction() (*DocumentFunction, error) {
	beginTok, _, _ := p.next() // BeginFunction, guaranteed present by the caller's peek

	fn := &DocumentFunction{Args: map[string][]DocumentElement{}, Start: beginTok.Start}

	nameTok, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !ok || nameTok.Typ != TokenCall {
		return nil, NewUnexpectedTokenError(nameTok, "Call")
	}
	fn.Name = p.src.Slice(nameTok.Start, nameTok.End)

	argsTok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewUnexpectedEOFError(fn.Start)
	}
	if argsTok.Typ == TokenBeginArgs {
		p.consume()
		if err := p.parseArguments(fn); err != nil {
			return nil, err
		}
	}

	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewUnexpectedEOFError(fn.Start)
	}

	switch tok.Typ {
	case TokenEndFunction:
		p.consume()
		fn.End = tok.Start
		return fn, nil
	case TokenWhitespace:
		p.consume()
		fn.Args[ArgKeyWhitespace] = []DocumentElement{{Text: string(tok.Scalar)}}

		beginContentTok, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok || beginContentTok.Typ != TokenBeginContent {
			return nil, NewUnexpectedTokenError(beginContentTok, "BeginContent")
		}

		content, err := p.parseElements(TokenEndContent)
		if err != nil {
			return nil, err
		}
		fn.Content = content

		endFnTok, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok || endFnTok.Typ != TokenEndFunction {
			return nil, NewUnexpectedTokenError(endFnTok, "EndFunction")
		}
		fn.End = endFnTok.Start
		return fn, nil
	default:
		return nil, NewUnexpectedTokenError(tok, "'}' or whitespace")
	}
}

// parseArguments is the "argument_list" production: the single BeginArgs
// already consumed by the caller wraps one or more ArgKey/value pairs,
// closed by a single EndArgs once no further '[' follows.
func (p *Parser) parseArguments(fn *DocumentFunction) error {
	for {
		tok, ok, err := p.peek()
		if err != nil {
			return err
		}
		if !ok {
			return NewUnexpectedEOFError(fn.Start)
		}
		if tok.Typ == TokenEndArgs {
			p.consume()
			return nil
		}
		if err := p.parseArgument(fn); err != nil {
			return err
		}
	}
}

// parseArgument is the "argument" production: ArgKey, BeginArgValue, then
// an argument_value sequence. Duplicate keys are last-write-wins.
func (p *Parser) parseArgument(fn *DocumentFunction) error {
	keyTok, ok, err := p.next()
	if err != nil {
		return err
	}
	if !ok || keyTok.Typ != TokenArgKey {
		return NewUnexpectedTokenError(keyTok, "ArgKey")
	}
	key := p.src.Slice(keyTok.Start, keyTok.End)

	beginValTok, ok, err := p.next()
	if err != nil {
		return err
	}
	if !ok || beginValTok.Typ != TokenBeginArgValue {
		return NewUnexpectedTokenError(beginValTok, "BeginArgValue")
	}

	value, err := p.parseElements(TokenEndArgValue)
	if err != nil {
		return err
	}

	fn.Args[key] = value
	return nil
}

// parseRaw is the "raw" production: it synthesizes a DocumentFunction from
// the lexer's BeginRaw/Whitespace/Text/[Whitespace]/EndRaw tokens, so that
// a raw string parses into the same DocumentFunction shape as a call,
// named after its own delimiter text.
func (p *Parser) parseRaw(beginTok Token) (*DocumentFunction, error) {
	p.consume() // BeginRaw, already peeked by the caller

	fn := &DocumentFunction{
		Args:  map[string][]DocumentElement{},
		Start: beginTok.Start,
		// BeginRaw's range spans the enclosing '{' through the last '<', so
		// the delimiter text excludes that leading brace.
		Name: p.src.Slice(beginTok.Start+1, beginTok.End),
	}

	wsTok, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !ok || wsTok.Typ != TokenWhitespace {
		return nil, NewUnexpectedTokenError(wsTok, "Whitespace")
	}
	fn.Args[ArgKeyWhitespace] = []DocumentElement{{Text: string(wsTok.Scalar)}}

	textTok, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !ok || textTok.Typ != TokenText {
		return nil, NewUnexpectedTokenError(textTok, "Text")
	}
	fn.Content = []DocumentElement{{Text: p.src.Slice(textTok.Start, textTok.End)}}

	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewUnexpectedEOFError(fn.Start)
	}

	if tok.Typ == TokenWhitespace {
		p.consume()
		fn.Args[ArgKeyWhitespaceAfter] = []DocumentElement{{Text: string(tok.Scalar)}}

		tok, ok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, NewUnexpectedEOFError(fn.Start)
		}
	}

	if tok.Typ != TokenEndRaw {
		return nil, NewUnexpectedTokenError(tok, "EndRaw")
	}
	p.consume()
	fn.End = tok.End - 1 // EndRaw's range includes the trailing '}'
	return fn, nil
}
