package litua

import "fmt"

// Reserved argument keys synthesized by the parser rather than written by
// a document's author.
const (
	ArgKeyFilepath        = "filepath"
	ArgKeyWhitespace      = "=whitespace"
	ArgKeyWhitespaceAfter = "=whitespace-after"
)

// DocumentElement is one member of a content or argument-value sequence: it
// is either literal text or a nested function call, never both. Two
// adjacent Text elements never occur; the parser always merges or
// terminates a run before producing the next element.
type DocumentElement struct {
	Text     string
	Function *DocumentFunction
}

// IsText reports whether this element is literal text rather than a
// function call.
func (e DocumentElement) IsText() bool { return e.Function == nil }

func (e DocumentElement) String() string {
	if e.IsText() {
		return fmt.Sprintf("Text(%q)", e.Text)
	}
	return e.Function.String()
}

// DocumentFunction is one `{name[...]...}` call site, fully resolved by the
// parser: its name is never empty, and Args maps each argument key to the
// already-parsed element sequence of its value. A raw string is
// represented identically, as a DocumentFunction whose Name is its
// delimiter text and whose Args carries the synthetic "=whitespace" /
// "=whitespace-after" keys.
type DocumentFunction struct {
	Name    string
	Args    map[string][]DocumentElement
	Content []DocumentElement

	// Start and End are the byte offsets of the opening '{' and closing
	// '}' (inclusive of both, for raw strings) in the originating Source,
	// used for diagnostics a Collaborator wants to attribute to source
	// locations of its own.
	Start, End int
}

func (f *DocumentFunction) String() string {
	return fmt.Sprintf("Function(%q)", f.Name)
}

// Arg returns the element sequence stored under key, and whether it was
// present at all.
func (f *DocumentFunction) Arg(key string) ([]DocumentElement, bool) {
	v, ok := f.Args[key]
	return v, ok
}

// DocumentTree is the fully parsed document: a single root DocumentFunction
// named "document", whose Args["filepath"] holds the source's own filepath
// as a one-element Text sequence, and whose Content is the top-level
// element sequence. It is the handoff artifact between the parser and an
// external Collaborator.
type DocumentTree struct {
	Source *Source
	Root   *DocumentFunction
}

// Content is a convenience accessor for Root.Content, the top-level
// element sequence most Collaborators walk first.
func (t *DocumentTree) Content() []DocumentElement { return t.Root.Content }

// newDocumentTree wraps a parsed top-level element sequence in the
// reserved "document" root function every tree is rooted in.
func newDocumentTree(src *Source, content []DocumentElement) *DocumentTree {
	root := &DocumentFunction{
		Name: "document",
		Args: map[string][]DocumentElement{
			ArgKeyFilepath: {{Text: src.Filepath}},
		},
		Content: content,
		Start:   0,
		End:     src.Len(),
	}
	return &DocumentTree{Source: src, Root: root}
}
