package litua

import "unicode/utf8"

// lineBreakers is the set of scalars that, per Unicode TR#14 rules LB4/LB5,
// mandatorily terminate a line. U+000D (CR) followed by U+000A (LF) is
// special-cased in lineIndex.build to count as a single break.
var lineBreakers = map[rune]bool{
	'\u000A': true, // LF
	'\u000B': true, // VT
	'\u000C': true, // FF
	'\u000D': true, // CR
	'\u0085': true, // NEL
	'\u2028': true, // LINE SEPARATOR
	'\u2029': true, // PARAGRAPH SEPARATOR
}

// lineEntry is one element of the lazy (byte_index_of_line_start,
// borrowed_line_slice) sequence. The slice excludes its terminator.
type lineEntry struct {
	start int
	text  string
}

// lineIndex answers "what line/column is byte offset b on" queries against
// a Source, following Unicode TR#14 hard-break rules. It is built lazily,
// once, on first use by the error formatter; the lexer itself never
// consults it.
type lineIndex struct {
	source  string
	entries []lineEntry
	built   bool
}

func newLineIndex(source string) *lineIndex {
	return &lineIndex{source: source}
}

// build walks the source once, splitting it into line entries. It is
// idempotent and only does work the first time it's called.
func (li *lineIndex) build() {
	if li.built {
		return
	}
	li.built = true

	lineStart := 0
	i := 0
	for i < len(li.source) {
		r, w := utf8.DecodeRuneInString(li.source[i:])
		if lineBreakers[r] {
			termEnd := i + w
			if r == '\u000D' && termEnd < len(li.source) {
				if nr, nw := utf8.DecodeRuneInString(li.source[termEnd:]); nr == '\u000A' {
					termEnd += nw
				}
			}
			li.entries = append(li.entries, lineEntry{start: lineStart, text: li.source[lineStart:i]})
			lineStart = termEnd
			i = termEnd
			continue
		}
		i += w
	}
	// A trailing terminator (or no terminator at all) produces a final,
	// possibly-empty, line.
	li.entries = append(li.entries, lineEntry{start: lineStart, text: li.source[lineStart:]})
}

// Locate returns the zero-based (line, char column, byte column within the
// line) triple for byte offset b.
func (li *lineIndex) Locate(b int) (line, charCol, byteCol int) {
	li.build()

	idx := 0
	for i, e := range li.entries {
		idx = i
		lineEnd := e.start + len(e.text)
		if b <= lineEnd || i == len(li.entries)-1 {
			break
		}
	}

	entry := li.entries[idx]
	byteCol = b - entry.start
	if byteCol < 0 {
		byteCol = 0
	}
	if byteCol > len(entry.text) {
		byteCol = len(entry.text)
	}
	charCol = utf8.RuneCountInString(entry.text[:byteCol])
	return idx, charCol, byteCol
}
