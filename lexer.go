package litua

import (
	"unicode"
	"unicode/utf8"
)

// eof is returned by peekRune once the source is exhausted. -1 is not a
// valid rune value, so it can never collide with real input.
const eof rune = -1

// Lexer is a pull-model tokenizer: Next is called once per token and
// honors its two-scenario contract exactly:
//
//   - Success: zero or more non-EOF tokens, then exactly one EndOfFile,
//     then permanently (ok == false, err == nil).
//   - Failure: zero or more non-EOF tokens, optionally one EndOfFile, then
//     exactly one error, then permanently (ok == false, err == nil).
//
// Internally, a single input character can require more than one output
// token (e.g. the '{' that both ends a text run and begins a function), so
// a FIFO queue buffers every token a single step of the state machine
// produces before Next drains it one at a time. This is what lets an error
// discovered mid-character surface only after every already-buffered token
// has been returned.
type Lexer struct {
	src *Source
	pos int

	scopes    *scopeStack
	funcStart []int // byte offset of each currently-open function's '{', one per Function scope on the stack

	pending []Token

	terminated  bool
	err         error
	errSurfaced bool
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src *Source) *Lexer {
	return &Lexer{
		src:    src,
		scopes: newScopeStack(),
	}
}

// Next returns the next token. ok is false exactly when the stream is
// exhausted; err is non-nil on at most one such call, per the two-scenario
// contract above.
func (l *Lexer) Next() (Token, bool, error) {
	for {
		if len(l.pending) > 0 {
			t := l.pending[0]
			l.pending = l.pending[1:]
			return t, true, nil
		}
		if l.terminated {
			if l.err != nil && !l.errSurfaced {
				l.errSurfaced = true
				return Token{}, false, l.err
			}
			return Token{}, false, nil
		}
		l.step()
	}
}

// step performs one unit of lexing work. By construction (see the
// handle* methods below), whenever step returns, the scope stack's top is
// always Content or ArgumentValue: a Function or RawString scope is always
// fully resolved, synchronously, within the single step call that pushed
// it, via scanText's recursive dispatch to handleOpenBrace. This is why no
// persistent "FoundCallOpening"/"ReadingCallName"/... mode field is needed
// across calls to step: the scope stack top alone tells the next step what
// to do.
func (l *Lexer) step() {
	switch l.scopes.top() {
	case scopeContent:
		l.scanText(false)
	case scopeArgumentValue:
		l.scanText(true)
	default:
		l.fail(NewUnbalancedParenthesesError(l.pos, "internal lexer error: unexpected scope on top of stack"))
	}
}

func (l *Lexer) fail(err error) {
	l.err = err
	l.terminated = true
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.src.Text) {
		return eof, 0
	}
	r, w := utf8.DecodeRuneInString(l.src.Text[l.pos:])
	return r, w
}

func isSpace(r rune) bool {
	return r != eof && unicode.IsSpace(r)
}

func (l *Lexer) emit(typ TokenType, start, end int) {
	l.pending = append(l.pending, Token{Typ: typ, Start: start, End: end})
}

func (l *Lexer) emitOffset(typ TokenType, offset int) {
	l.emit(typ, offset, offset)
}

func (l *Lexer) emitWhitespace(offset int, r rune) {
	l.pending = append(l.pending, Token{Typ: TokenWhitespace, Start: offset, End: offset, Scalar: r})
}

func (l *Lexer) flushText(start, end int) {
	if end > start {
		l.emit(TokenText, start, end)
	}
}

// scanText consumes a maximal text run in the current scope (Content or
// ArgumentValue), then dispatches on whichever delimiter stopped it:
// '{' always starts a nested construct; '}' ends Content; ']' ends
// ArgumentValue; EOF is only legal when the scope stack is back down to
// the initial Content entry.
func (l *Lexer) scanText(inArgValue bool) {
	start := l.pos
	for {
		r, w := l.peekRune()
		switch {
		case r == eof:
			l.flushText(start, l.pos)
			l.handleEOF()
			return
		case r == '{':
			l.flushText(start, l.pos)
			l.handleOpenBrace()
			return
		case !inArgValue && r == '}':
			l.flushText(start, l.pos)
			l.handleCloseBraceInContent()
			return
		case inArgValue && r == ']':
			l.flushText(start, l.pos)
			l.handleCloseBracketInArgValue()
			return
		default:
			l.pos += w
		}
	}
}

// handleEOF implements the rule that a clean end of input is
// only possible once every function/argument/raw-string scope has closed,
// i.e. the scope stack has unwound back to its single initial Content
// entry. Anything else open at EOF is UnexpectedEOF.
func (l *Lexer) handleEOF() {
	if l.scopes.len() > 1 {
		l.fail(NewUnexpectedEOFError(l.pos))
		return
	}
	l.emitOffset(TokenEndOfFile, l.pos)
	l.terminated = true
}

// handleCloseBraceInContent closes a function's content and the function
// itself atomically: the same '}' that ends the content body also ends
// the call.
func (l *Lexer) handleCloseBraceInContent() {
	offset := l.pos
	l.pos++ // '}' is always one byte

	if l.scopes.len() == 1 {
		l.fail(NewUnbalancedParenthesesError(offset, "unmatched closing brace"))
		return
	}

	l.emitOffset(TokenEndContent, offset)
	l.scopes.pop() // Content

	l.emitOffset(TokenEndFunction, offset)
	l.scopes.pop() // Function
	l.funcStart = l.funcStart[:len(l.funcStart)-1]
}

// handleCloseBracketInArgValue closes one `[key=value]` bracket: ']' only
// ends the argument's value, not the whole argument list, so control
// returns to afterArgumentClose to decide what's allowed next.
func (l *Lexer) handleCloseBracketInArgValue() {
	offset := l.pos
	l.pos++ // ']' is always one byte

	l.emitOffset(TokenEndArgValue, offset)
	l.scopes.pop() // ArgumentValue, revealing Function

	l.afterArgumentClose()
}

// afterArgumentClose runs right after one `[key=value]` bracket has
// closed: the next character either opens another bracket in the same
// argument list (no further BeginArgs/EndArgs is emitted; the list is
// still open), or ends the list altogether, in which case the single
// EndArgs closing the whole list is emitted here before the content body
// opens or the function closes outright.
func (l *Lexer) afterArgumentClose() {
	r, w := l.peekRune()
	switch {
	case r == eof:
		l.fail(NewUnexpectedEOFError(l.pos))
	case r == '[':
		l.pos += w
		l.readArgumentKey()
	case r == '}':
		l.emitOffset(TokenEndArgs, l.pos)
		l.closeFunctionDirectly()
	case isSpace(r):
		l.emitOffset(TokenEndArgs, l.pos)
		l.openContentAfterHeader()
	default:
		l.fail(NewInvalidSyntaxError(l.pos, "expected '[', whitespace or '}' after an argument"))
	}
}

// closeFunctionDirectly handles a '}' that closes a function with no
// content body: either immediately after the call name, or immediately
// after its arguments.
func (l *Lexer) closeFunctionDirectly() {
	offset := l.pos
	l.pos++ // '}'

	l.emitOffset(TokenEndFunction, offset)
	l.scopes.pop() // Function
	l.funcStart = l.funcStart[:len(l.funcStart)-1]
}

// openContentAfterHeader consumes the single whitespace scalar that
// separates a function's name/args from its content body, and opens the
// content scope.
func (l *Lexer) openContentAfterHeader() {
	offset := l.pos
	r, w := l.peekRune()
	l.pos += w
	l.emitWhitespace(offset, r)

	l.scopes.push(scopeContent)
	l.emitOffset(TokenBeginContent, l.pos)
}

// readArgumentKey scans an argument's key up to its '=', rejecting an
// empty key.
func (l *Lexer) readArgumentKey() {
	keyStart := l.pos
	for {
		r, w := l.peekRune()
		switch r {
		case eof:
			l.fail(NewUnexpectedEOFError(l.pos))
			return
		case '=':
			if l.pos == keyStart {
				l.fail(NewInvalidSyntaxError(l.pos, "argument key must not be an empty string"))
				return
			}
			l.emit(TokenArgKey, keyStart, l.pos)
			l.pos += w // '='
			l.scopes.push(scopeArgumentValue)
			l.emitOffset(TokenBeginArgValue, l.pos)
			return
		default:
			l.pos += w
		}
	}
}

// handleOpenBrace processes a '{' wherever it's found (top-level content,
// a function's content, or an argument value). It looks one character past
// the brace to decide between a raw string and a normal function call: a
// '{' never opens a raw string or a function scope until that lookahead
// resolves which one it is.
func (l *Lexer) handleOpenBrace() {
	braceOffset := l.pos
	l.pos++ // '{'

	if r, _ := l.peekRune(); r == '<' {
		l.lexRawOpening(braceOffset)
		return
	}

	l.scopes.push(scopeFunction)
	l.funcStart = append(l.funcStart, braceOffset)
	l.emitOffset(TokenBeginFunction, braceOffset)
	l.readCallName()
}

// readCallName scans a function's name, rejecting an empty name ("{}" is
// an error, as is an empty name before any other terminator), then
// dispatches on whatever follows it: '}' (contentless), '[' (arguments)
// or whitespace (content).
func (l *Lexer) readCallName() {
	nameStart := l.pos

loop:
	for {
		r, w := l.peekRune()
		switch {
		case r == eof:
			l.fail(NewUnexpectedEOFError(l.pos))
			return
		case r == '}', r == '[', isSpace(r):
			break loop
		default:
			l.pos += w
		}
	}

	if l.pos == nameStart {
		l.fail(NewInvalidSyntaxError(l.pos, "function call name must not be empty"))
		return
	}
	l.emit(TokenCall, nameStart, l.pos)

	switch r, w := l.peekRune(); {
	case r == '}':
		l.closeFunctionDirectly()
	case r == '[':
		offset := l.pos
		l.pos += w
		l.emitOffset(TokenBeginArgs, offset)
		l.readArgumentKey()
	default:
		l.openContentAfterHeader()
	}
}

// lexRawOpening counts the opening run of '<' characters (1 to 126; 127 is
// an error) and the single whitespace scalar that must follow it.
// BeginRaw's range spans from the enclosing '{' through the last '<', so
// that the structural brace is still accounted for in a byte-for-byte
// reconstruction of the source even though raw strings never emit a
// BeginFunction/EndFunction pair (the parser strips that leading brace
// back off when it reads the delimiter text as the synthetic function's
// name; see parser.go).
func (l *Lexer) lexRawOpening(braceOffset int) {
	count := 0
	for {
		r, w := l.peekRune()
		if r != '<' {
			break
		}
		l.pos += w
		count++
	}

	if count > 126 {
		l.fail(NewInvalidSyntaxError(l.pos, "raw string opening delimiter exceeds the maximum length of 126"))
		return
	}

	r, w := l.peekRune()
	switch {
	case r == eof:
		l.fail(NewUnexpectedEOFError(l.pos))
		return
	case !isSpace(r):
		l.fail(NewInvalidSyntaxError(l.pos, "raw string opening delimiter must be followed by whitespace"))
		return
	}

	beginRawEnd := l.pos
	wsOffset := l.pos
	wsRune := r
	l.pos += w // consume the whitespace

	l.scopes.push(scopeRawString)
	l.emit(TokenBeginRaw, braceOffset, beginRawEnd)
	l.emitWhitespace(wsOffset, wsRune)

	l.lexRawBody(count)
}

// lexRawBody scans the raw string's body, watching for a run of '>'
// exactly as long as the opening run, immediately followed by '}'. A
// shorter run of '>' is just literal body text and resets the count; a
// run longer than k is an error, surfaced as "the character after a
// completed run is not '}'" since counting stops the instant k is
// reached.
func (l *Lexer) lexRawBody(k int) {
	bodyStart := l.pos

	for {
		r, w := l.peekRune()
		switch {
		case r == eof:
			l.fail(NewUnexpectedEOFError(l.pos))
			return
		case r == '>':
			runStart := l.pos
			count := 0
			for count < k {
				r2, w2 := l.peekRune()
				if r2 != '>' {
					break
				}
				l.pos += w2
				count++
			}
			if count < k {
				// Short run: ordinary body text, keep scanning.
				continue
			}

			r3, w3 := l.peekRune()
			switch {
			case r3 == eof:
				l.fail(NewUnexpectedEOFError(l.pos))
				return
			case r3 != '}':
				l.fail(NewInvalidSyntaxError(l.pos, "character after a raw string's closing delimiter must be '}'"))
				return
			}

			l.finishRawBody(bodyStart, runStart)
			l.pos += w3 // '}'
			l.emit(TokenEndRaw, runStart, l.pos)
			l.scopes.pop() // RawString
			return
		default:
			l.pos += w
		}
	}
}

// finishRawBody emits the raw string's Text content, splitting off a
// single trailing whitespace scalar (if present) into its own token so the
// parser can populate the synthetic function's "=whitespace-after"
// argument. That extra token is only emitted when the body actually ends
// in one whitespace scalar; otherwise none is produced.
func (l *Lexer) finishRawBody(bodyStart, runStart int) {
	textEnd := runStart
	hasTrailingWS := false
	var wsOffset int
	var wsRune rune

	if textEnd > bodyStart {
		r, w := utf8.DecodeLastRuneInString(l.src.Text[bodyStart:textEnd])
		if isSpace(r) {
			hasTrailingWS = true
			wsOffset = textEnd - w
			wsRune = r
			textEnd = wsOffset
		}
	}

	l.emit(TokenText, bodyStart, textEnd)
	if hasTrailingWS {
		l.emitWhitespace(wsOffset, wsRune)
	}
}
