package litua

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// loadCorpus reads testdata/corpus.txtar into a name -> content map, used by
// both the lexer's and the parser's own scenario tests so that a single set
// of fixture documents backs both layers.
func loadCorpus(t *testing.T) map[string]string {
	t.Helper()
	ar, err := txtar.ParseFile("testdata/corpus.txtar")
	if err != nil {
		t.Fatalf("failed to parse corpus.txtar: %v", err)
	}
	out := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		out[f.Name] = strings.TrimRight(string(f.Data), "\n")
	}
	return out
}

func TestCorpusLexesWithoutPanicking(t *testing.T) {
	corpus := loadCorpus(t)
	// Every fixture must either lex cleanly to EndOfFile or fail with a
	// specific, expected error kind; neither case should ever panic.
	wantErr := map[string]func(error) bool{
		"raw_delim_127.lit": IsInvalidSyntax,
		"empty_call.lit":     IsInvalidSyntax,
		"empty_arg_key.lit":  IsInvalidSyntax,
		"unterminated.lit":   IsUnexpectedEOF,
		"stray_brace.lit":    IsUnbalancedParentheses,
	}

	for name, source := range corpus {
		name, source := name, source
		t.Run(name, func(t *testing.T) {
			_, err := lexAll(t, source)
			check, wantsError := wantErr[name]
			if !wantsError {
				if err != nil {
					t.Fatalf("unexpected lex error for %s: %v", name, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("%s: expected a lex error, got none", name)
			}
			if !check(err) {
				t.Fatalf("%s: error %v did not match the expected kind", name, err)
			}
		})
	}
}

func TestCorpusParsesCleanDocuments(t *testing.T) {
	corpus := loadCorpus(t)
	cleanNames := []string{
		"plain.lit", "contentless.lit", "args.lit", "args_content.lit",
		"raw.lit", "nested.lit", "nested_arg_value.lit", "duplicate_arg.lit",
		"raw_delim_126.lit", "linebreaks.lit",
	}
	for _, name := range cleanNames {
		name := name
		t.Run(name, func(t *testing.T) {
			source, ok := corpus[name]
			if !ok {
				t.Fatalf("missing corpus fixture %s", name)
			}
			tree, err := Parse(NewSource(name, source))
			if err != nil {
				t.Fatalf("unexpected parse error for %s: %v", name, err)
			}
			if tree.Root.Name != "document" {
				t.Fatalf("%s: root function name = %q, want %q", name, tree.Root.Name, "document")
			}
		})
	}
}

func TestCorpusRawDelimiterBoundary(t *testing.T) {
	corpus := loadCorpus(t)

	if _, err := Parse(NewSource("raw126", corpus["raw_delim_126.lit"])); err != nil {
		t.Errorf("126 '<' characters should be accepted: %v", err)
	}

	_, err := Parse(NewSource("raw127", corpus["raw_delim_127.lit"]))
	if err == nil {
		t.Fatal("127 '<' characters should be rejected")
	}
	if !IsInvalidSyntax(err) {
		t.Errorf("expected InvalidSyntaxError, got %v", err)
	}
}

func TestCorpusLineBreaksProduceExpectedLineCount(t *testing.T) {
	corpus := loadCorpus(t)
	li := newLineIndex(corpus["linebreaks.lit"])
	li.build()
	// A, B, C, D, E, F, G separated by CRLF, LF, CR, NEL, LINE SEPARATOR,
	// PARAGRAPH SEPARATOR: six breaks, seven lines.
	if len(li.entries) != 7 {
		t.Fatalf("got %d lines, want 7", len(li.entries))
	}
	for i, want := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		if li.entries[i].text != want {
			t.Errorf("line %d = %q, want %q", i, li.entries[i].text, want)
		}
	}
}
