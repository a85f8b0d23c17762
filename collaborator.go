package litua

// Collaborator is the out-of-scope scripting engine this package hands a
// parsed document to. litua itself never executes a DocumentTree; it only
// produces one, and the three methods below bracket the part of a build a
// Collaborator owns: rewriting the raw source before lexing, turning a
// resolved tree into output text, and touching up that output before it
// is written to disk.
type Collaborator interface {
	// Preprocess runs before lexing, and may rewrite source entirely (for
	// example to expand includes). filepath is the source's own Filepath,
	// for diagnostics the Collaborator wants to report against it.
	Preprocess(filepath, source string) (string, error)

	// Transform walks a fully parsed DocumentTree and renders it to output
	// text. This is where calling into the scripting language itself
	// happens; litua has no opinion on what a function call "means".
	Transform(tree *DocumentTree) (string, error)

	// Postprocess runs after Transform, on the rendered output, before it
	// is written to the destination.
	Postprocess(filepath, output string) (string, error)
}

// NoopCollaborator is a Collaborator that leaves source, tree and output
// untouched at every stage. It is useful for exercising the lexer/parser
// pipeline on its own, and as the default when no Collaborator has been
// configured.
type NoopCollaborator struct{}

func (NoopCollaborator) Preprocess(_, source string) (string, error) { return source, nil }

// Transform renders a tree's top-level text elements back out verbatim and
// renders every function call as its name alone; a real Collaborator's
// Transform is expected to interpret calls according to its own scripting
// language instead.
func (NoopCollaborator) Transform(tree *DocumentTree) (string, error) {
	var out []byte
	for _, elem := range tree.Content() {
		if elem.IsText() {
			out = append(out, elem.Text...)
		} else {
			out = append(out, elem.Function.Name...)
		}
	}
	return string(out), nil
}

func (NoopCollaborator) Postprocess(_, output string) (string, error) { return output, nil }
