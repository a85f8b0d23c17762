package litua

// Source is the immutable, fully materialized UTF-8 buffer that every byte
// offset produced by the lexer and parser is relative to. It is borrowed by
// the lexer and parser; the tree they build copies out owned strings, so a
// Source can be discarded once parsing completes.
type Source struct {
	// Filepath is used only for diagnostics and for the root document
	// function's "filepath" argument; it need not refer to a real file.
	Filepath string

	// Text is the full, borrowed source text.
	Text string
}

// NewSource wraps filepath and text into a Source. It performs no
// validation; malformed UTF-8 surfaces as lexer errors, not here.
func NewSource(filepath, text string) *Source {
	return &Source{Filepath: filepath, Text: text}
}

// Len returns the source's byte length.
func (s *Source) Len() int {
	return len(s.Text)
}

// Slice returns the borrowed substring denoted by the half-open byte range
// [start, end). Callers must only pass offsets derived from token ranges,
// which are guaranteed to be valid UTF-8 scalar boundaries.
func (s *Source) Slice(start, end int) string {
	return s.Text[start:end]
}
