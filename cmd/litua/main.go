// Command litua lexes, parses and renders a document, handing the parsed
// tree to a Collaborator. This driver ships only
// litua.NoopCollaborator; a real scripting engine is out of this
// package's scope and is expected to be wired in by an embedder.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/loggo"
	"github.com/kr/pretty"
	"github.com/openconfig/goyang/pkg/indent"
	"github.com/pborman/getopt"
	"gopkg.in/yaml.v2"

	"github.com/typho-lang/litua"
)

var logger = loggo.GetLogger("litua")

// config is the driver's fully resolved set of options, assembled once
// from getopt results.
type config struct {
	SourcePath     string   `yaml:"source"`
	HooksDir       string   `yaml:"hooks_dir,omitempty"`
	RequirePaths   []string `yaml:"require_paths,omitempty"`
	Destination    string   `yaml:"destination"`
	DumpConfigOnly bool     `yaml:"-"`
	DumpLexedOnly  bool     `yaml:"-"`
	DumpParsedOnly bool     `yaml:"-"`
}

func parseFlags() config {
	var cfg config
	var requirePaths []string

	getopt.StringVarLong(&cfg.HooksDir, "hooks-dir", 0, "directory of hook scripts, passed through to the collaborator", "DIR")
	getopt.ListVarLong(&requirePaths, "add-require-path", 0, "additional require search path (repeatable)", "DIR")
	getopt.StringVarLong(&cfg.Destination, "destination", 'o', "output file path", "PATH")
	getopt.BoolVarLong(&cfg.DumpConfigOnly, "dump-config", 0, "print the resolved configuration as YAML and exit")
	getopt.BoolVarLong(&cfg.DumpLexedOnly, "dump-lexed", 0, "print the lexer's token stream and exit")
	getopt.BoolVarLong(&cfg.DumpParsedOnly, "dump-parsed", 0, "print the parsed document tree and exit")
	getopt.SetParameters("SOURCE")

	if err := getopt.Getopt(func(o getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	cfg.RequirePaths = requirePaths

	args := getopt.Args()
	if len(args) > 0 {
		cfg.SourcePath = args[0]
	}

	if cfg.Destination == "" {
		cfg.Destination = defaultDestination(cfg.SourcePath)
	}
	return cfg
}

// defaultDestination derives an output path from the source path: a
// ".lit" extension becomes ".out" and a ".out" extension becomes ".lit";
// any other extension simply gains ".out"; an empty source name falls back
// to "doc.out".
func defaultDestination(source string) string {
	if source == "" {
		return "doc.out"
	}
	ext := filepath.Ext(source)
	if ext == ".lit" {
		return strings.TrimSuffix(source, ext) + ".out"
	}
	if ext == ".out" {
		return strings.TrimSuffix(source, ext) + ".lit"
	}
	return source + ".out"
}

// errorCategory is one of the four display buckets the driver sorts
// every error into before logging and exiting.
type errorCategory string

const (
	categoryIO           errorCategory = "IO"
	categoryEncoding     errorCategory = "Encoding"
	categoryCore         errorCategory = "Core"
	categoryCollaborator errorCategory = "Collaborator"
)

func categorize(cat errorCategory, err error) {
	logger.Errorf("%s error: %v", cat, err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", cat, err)
	os.Exit(1)
}

func main() {
	cfg := parseFlags()

	if cfg.DumpConfigOnly {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			categorize(categoryEncoding, err)
		}
		os.Stdout.Write(out)
		return
	}

	if cfg.SourcePath == "" {
		fmt.Fprintln(os.Stderr, "litua: missing SOURCE argument")
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	raw, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		categorize(categoryIO, err)
	}
	logger.Debugf("read %d bytes from %s", len(raw), cfg.SourcePath)

	collab := litua.Collaborator(litua.NoopCollaborator{})

	preprocessed, err := collab.Preprocess(cfg.SourcePath, string(raw))
	if err != nil {
		categorize(categoryCollaborator, err)
	}

	src := litua.NewSource(cfg.SourcePath, preprocessed)

	if cfg.DumpLexedOnly {
		dumpLexed(src)
		return
	}

	tree, err := litua.Parse(src)
	if err != nil {
		diag := litua.Format(src, err)
		categorize(categoryCore, diag)
	}

	if cfg.DumpParsedOnly {
		dumpParsed(tree)
		return
	}

	rendered, err := collab.Transform(tree)
	if err != nil {
		categorize(categoryCollaborator, err)
	}

	output, err := collab.Postprocess(cfg.SourcePath, rendered)
	if err != nil {
		categorize(categoryCollaborator, err)
	}

	if err := os.WriteFile(cfg.Destination, []byte(output), 0o644); err != nil {
		categorize(categoryIO, err)
	}
	logger.Infof("wrote %d bytes to %s", len(output), cfg.Destination)
}

func dumpLexed(src *litua.Source) {
	lex := litua.NewLexer(src)
	var tokens []litua.Token
	for {
		tok, ok, err := lex.Next()
		if !ok {
			if err != nil {
				diag := litua.Format(src, err)
				categorize(categoryCore, diag)
			}
			break
		}
		tokens = append(tokens, tok)
	}
	fmt.Printf("%# v\n", pretty.Formatter(tokens))
}

func dumpParsed(tree *litua.DocumentTree) {
	fmt.Printf("Function(%q)\n", tree.Root.Name)
	fmt.Print(indent.String("  ", renderArgs(tree.Root.Args)))
	fmt.Print(indent.String("  ", renderElements(tree.Root.Content)))
}

func renderElements(elems []litua.DocumentElement) string {
	var b strings.Builder
	for _, e := range elems {
		if e.IsText() {
			fmt.Fprintf(&b, "Text(%q)\n", e.Text)
			continue
		}
		fn := e.Function
		fmt.Fprintf(&b, "Function(%q)\n", fn.Name)
		if len(fn.Args) > 0 {
			b.WriteString(indent.String("  ", renderArgs(fn.Args)))
		}
		if len(fn.Content) > 0 {
			b.WriteString(indent.String("  ", renderElements(fn.Content)))
		}
	}
	return b.String()
}

func renderArgs(args map[string][]litua.DocumentElement) string {
	var b strings.Builder
	for key, value := range args {
		fmt.Fprintf(&b, "%s =\n", key)
		b.WriteString(indent.String("  ", renderElements(value)))
	}
	return b.String()
}
