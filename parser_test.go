package litua

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, alongside this package's
// plain testing.T tests elsewhere.
func TestParserSuite(t *testing.T) { TestingT(t) }

type ParserSuite struct{}

var _ = Suite(&ParserSuite{})

func parse(c *C, source string) *DocumentTree {
	tree, err := Parse(NewSource("<test>", source))
	c.Assert(err, IsNil)
	return tree
}

func (s *ParserSuite) TestPlainText(c *C) {
	tree := parse(c, "hello")
	c.Assert(tree.Root.Name, Equals, "document")
	c.Assert(tree.Content(), HasLen, 1)
	c.Check(tree.Content()[0].IsText(), Equals, true)
	c.Check(tree.Content()[0].Text, Equals, "hello")
}

func (s *ParserSuite) TestRootCarriesFilepath(c *C) {
	tree := parse(c, "x")
	fp, ok := tree.Root.Arg(ArgKeyFilepath)
	c.Assert(ok, Equals, true)
	c.Assert(fp, HasLen, 1)
	c.Check(fp[0].Text, Equals, "<test>")
}

func (s *ParserSuite) TestContentlessCall(c *C) {
	tree := parse(c, "{item}")
	c.Assert(tree.Content(), HasLen, 1)
	fn := tree.Content()[0].Function
	c.Assert(fn, NotNil)
	c.Check(fn.Name, Equals, "item")
	c.Check(fn.Args, HasLen, 0)
	c.Check(fn.Content, HasLen, 0)
}

func (s *ParserSuite) TestCallWithOneArgument(c *C) {
	tree := parse(c, "{item[arg1=3]}")
	fn := tree.Content()[0].Function
	val, ok := fn.Arg("arg1")
	c.Assert(ok, Equals, true)
	c.Assert(val, HasLen, 1)
	c.Check(val[0].Text, Equals, "3")
}

func (s *ParserSuite) TestTwoArgumentsThenContent(c *C) {
	tree := parse(c, "{element[arg1=3][arg2=42] hello world}")
	fn := tree.Content()[0].Function
	c.Check(fn.Name, Equals, "element")

	arg1, _ := fn.Arg("arg1")
	c.Assert(arg1, HasLen, 1)
	c.Check(arg1[0].Text, Equals, "3")

	arg2, _ := fn.Arg("arg2")
	c.Assert(arg2, HasLen, 1)
	c.Check(arg2[0].Text, Equals, "42")

	ws, ok := fn.Arg(ArgKeyWhitespace)
	c.Assert(ok, Equals, true)
	c.Assert(ws, HasLen, 1)
	c.Check(ws[0].Text, Equals, " ")

	c.Assert(fn.Content, HasLen, 1)
	c.Check(fn.Content[0].Text, Equals, "hello world")
}

func (s *ParserSuite) TestRawString(c *C) {
	tree := parse(c, " {<<< text >>>} ")
	c.Assert(tree.Content(), HasLen, 3)

	c.Check(tree.Content()[0].Text, Equals, " ")

	fn := tree.Content()[1].Function
	c.Assert(fn, NotNil)
	c.Check(fn.Name, Equals, "<<<")

	before, ok := fn.Arg(ArgKeyWhitespace)
	c.Assert(ok, Equals, true)
	c.Assert(before, HasLen, 1)
	c.Check(before[0].Text, Equals, " ")

	after, ok := fn.Arg(ArgKeyWhitespaceAfter)
	c.Assert(ok, Equals, true)
	c.Assert(after, HasLen, 1)
	c.Check(after[0].Text, Equals, " ")

	c.Assert(fn.Content, HasLen, 1)
	c.Check(fn.Content[0].Text, Equals, "text")

	c.Check(tree.Content()[2].Text, Equals, " ")
}

func (s *ParserSuite) TestThreeTopLevelElements(c *C) {
	tree := parse(c, "{a}text{b}")
	c.Assert(tree.Content(), HasLen, 3)
	c.Check(tree.Content()[0].Function.Name, Equals, "a")
	c.Check(tree.Content()[1].Text, Equals, "text")
	c.Check(tree.Content()[2].Function.Name, Equals, "b")
}

func (s *ParserSuite) TestNestedFunctionInArgumentValue(c *C) {
	tree := parse(c, "{outer[key={inner}]}")
	outer := tree.Content()[0].Function
	val, ok := outer.Arg("key")
	c.Assert(ok, Equals, true)
	c.Assert(val, HasLen, 1)
	c.Check(val[0].Function.Name, Equals, "inner")
}

func (s *ParserSuite) TestDuplicateArgumentKeyLastWriteWins(c *C) {
	tree := parse(c, "{item[arg1=3][arg1=4]}")
	fn := tree.Content()[0].Function
	c.Check(fn.Args, HasLen, 1)
	val, _ := fn.Arg("arg1")
	c.Assert(val, HasLen, 1)
	c.Check(val[0].Text, Equals, "4")
}

func (s *ParserSuite) TestEmptyCallIsSyntaxError(c *C) {
	_, err := Parse(NewSource("<test>", "{}"))
	c.Assert(err, NotNil)
	c.Check(IsInvalidSyntax(err), Equals, true)
}

func (s *ParserSuite) TestUnterminatedFunctionIsUnexpectedEOF(c *C) {
	_, err := Parse(NewSource("<test>", "{item"))
	c.Assert(err, NotNil)
	c.Check(IsUnexpectedEOF(err), Equals, true)
}

func (s *ParserSuite) TestStrayClosingBraceIsUnbalanced(c *C) {
	_, err := Parse(NewSource("<test>", "hello}"))
	c.Assert(err, NotNil)
	c.Check(IsUnbalancedParentheses(err), Equals, true)
}

func (s *ParserSuite) TestParserConsumesLexerToExhaustion(c *C) {
	// Every scenario above implicitly exercises this, since Parse only
	// returns successfully once parseElements hits TokenEndOfFile; this
	// test pins the property against a document with every construct mixed
	// together.
	tree := parse(c, "a{b[k=v] c{d}}e {<<< f >>>} g")
	c.Check(tree.Content(), HasLen, 5)
}

// TestTreeShapeDiff renders the full DocumentFunction tree (byte offsets
// included) for a fixed document and diffs it against a hand-built expected
// tree with github.com/kylelemons/godebug/pretty, giving a readable diff on
// mismatch instead of a field-by-field c.Check chain.
func (s *ParserSuite) TestTreeShapeDiff(c *C) {
	source := "{item[arg1=3]}"
	tree, err := Parse(NewSource("<test>", source))
	c.Assert(err, IsNil)

	got := tree.Content()[0].Function
	want := &DocumentFunction{
		Name: "item",
		Args: map[string][]DocumentElement{
			"arg1": {{Text: "3"}},
		},
		Content: nil,
		Start:   0,
		End:     13,
	}

	if diff := pretty.Compare(want, got); diff != "" {
		c.Fatalf("tree shape mismatch (-want +got):\n%s", diff)
	}
}
