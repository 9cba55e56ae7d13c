package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected parse tree written in a test case. A node carries
// either a lexeme (a leaf matching a single token) or children.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
	Lexeme   string
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, lexeme string) *Tree {
	return &Tree{
		Kind:   kind,
		Lexeme: lexeme,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	buf.WriteString("(")
	buf.WriteString(t.Kind)
	if t.Lexeme != "" {
		buf.WriteString(" '")
		buf.WriteString(t.Lexeme)
		buf.WriteString("'")
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

// DiffTree compares an actual tree against an expectation. A node kind of _
// in the expectation matches any kind.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

// TestCase is one grammar test: a sentence and the parse tree it must
// produce. An empty tree part means the sentence must be rejected.
type TestCase struct {
	Description string
	Sentence    string
	Reject      bool
	Output      *Tree
}

// ParseTestCase reads a test case consisting of three parts separated by ---
// lines: a description, a sentence, and an expected tree.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	c := &TestCase{
		Description: string(parts[0].buf),
		Sentence:    strings.TrimSpace(string(parts[1].buf)),
	}
	treeSrc := strings.TrimSpace(string(parts[2].buf))
	if treeSrc == "" {
		c.Reject = true
		return c, nil
	}
	tp := &treeParser{
		src: treeSrc,
	}
	tree, err := tp.parseTree()
	if err != nil {
		return nil, err
	}
	c.Output = tree.Fill()
	return c, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	lastDelimited := false
	for {
		buf, lineCount, delimited, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			// A delimiter on the last line opens one more part that the
			// scanner never sees. A rejection case ends exactly this way.
			if lastDelimited {
				bufs = append(bufs, &testCasePart{
					buf: []byte{},
				})
			}
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
		lastDelimited = delimited
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

// readPart reads lines up to a delimiter line or EOF. The delimited result
// reports which of the two ended the part; a nil buffer means the input was
// already exhausted.
func readPart(s *bufio.Scanner) ([]byte, int, bool, error) {
	if !s.Scan() {
		return nil, 0, false, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, true, nil
	}
	if _, err := buf.Write(line); err != nil {
		return nil, 0, false, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, true, nil
		}
		if _, err := buf.Write([]byte("\n")); err != nil {
			return nil, 0, false, err
		}
		if _, err := buf.Write(line); err != nil {
			return nil, 0, false, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, false, err
	}
	return buf.Bytes(), lineCount, false, nil
}

// treeParser reads expected trees written as s-expressions, like
// (S (N 'dog') (V 'barks')).
type treeParser struct {
	src string
	pos int
}

func (tp *treeParser) parseTree() (*Tree, error) {
	tree, err := tp.parseNode()
	if err != nil {
		return nil, err
	}
	tp.skipSpaces()
	if tp.pos < len(tp.src) {
		return nil, fmt.Errorf("trailing text after the tree: %v", tp.src[tp.pos:])
	}
	return tree, nil
}

func (tp *treeParser) parseNode() (*Tree, error) {
	tp.skipSpaces()
	if !tp.consume('(') {
		return nil, fmt.Errorf("expected ( at offset %v", tp.pos)
	}
	kind, err := tp.readName()
	if err != nil {
		return nil, err
	}
	tp.skipSpaces()
	if tp.peek() == '\'' || tp.peek() == '"' {
		lexeme, err := tp.readString()
		if err != nil {
			return nil, err
		}
		tp.skipSpaces()
		if !tp.consume(')') {
			return nil, fmt.Errorf("expected ) at offset %v", tp.pos)
		}
		return NewTerminalNode(kind, lexeme), nil
	}
	var children []*Tree
	for {
		tp.skipSpaces()
		if tp.consume(')') {
			return NewNonTerminalTree(kind, children...), nil
		}
		if tp.pos >= len(tp.src) {
			return nil, fmt.Errorf("unexpected end of tree: missing )")
		}
		child, err := tp.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}

func (tp *treeParser) skipSpaces() {
	for tp.pos < len(tp.src) {
		switch tp.src[tp.pos] {
		case ' ', '\t', '\n', '\r':
			tp.pos++
		default:
			return
		}
	}
}

func (tp *treeParser) peek() byte {
	if tp.pos >= len(tp.src) {
		return 0
	}
	return tp.src[tp.pos]
}

func (tp *treeParser) consume(c byte) bool {
	if tp.peek() != c {
		return false
	}
	tp.pos++
	return true
}

func (tp *treeParser) readName() (string, error) {
	start := tp.pos
	for tp.pos < len(tp.src) && !strings.ContainsRune(" \t\n\r()'\"", rune(tp.src[tp.pos])) {
		tp.pos++
	}
	if tp.pos == start {
		return "", fmt.Errorf("expected a node kind at offset %v", tp.pos)
	}
	return tp.src[start:tp.pos], nil
}

func (tp *treeParser) readString() (string, error) {
	quote := tp.src[tp.pos]
	tp.pos++
	var b strings.Builder
	for tp.pos < len(tp.src) {
		c := tp.src[tp.pos]
		switch c {
		case quote:
			tp.pos++
			return b.String(), nil
		case '\\':
			tp.pos++
			if tp.pos >= len(tp.src) {
				return "", fmt.Errorf("incomplete escape sequence at offset %v", tp.pos)
			}
			switch tp.src[tp.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(tp.src[tp.pos])
			}
			tp.pos++
		default:
			b.WriteByte(c)
			tp.pos++
		}
	}
	return "", fmt.Errorf("unterminated string literal")
}
