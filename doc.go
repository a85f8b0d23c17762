// Package litua implements the document compiler front-end for the litua
// text format: plain Unicode text interleaved with nestable function calls.
//
// The pipeline is strictly linear, leaves first:
//
//	Source -> lineIndex -> Lexer -> Parser -> Diagnostic / DocumentTree
//
// A tiny example:
//
//	src := litua.NewSource("doc.lit", "hello {item[arg1=3] world}")
//	tree, err := litua.Parse(src)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(tree.Root.Name) // Output: document
//
// litua only builds the tree; turning that tree into a final document is
// the job of an external Collaborator (see collaborator.go). This package
// never executes or interprets the tree itself; its only rendering is the
// name-and-text output of NoopCollaborator.
package litua
