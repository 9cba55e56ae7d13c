package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/kasami/driver"
	"github.com/nihei9/kasami/grammar"
	tspec "github.com/nihei9/kasami/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases collects test cases from a file or, recursively, a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

// Tester runs test cases against a grammar. The grammar is converted to CNF
// once, up front; each case's sentence is then tokenized and parsed with CYK
// and the reconstructed tree is diffed against the expectation.
type Tester struct {
	Grammar *grammar.Grammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	cnf := grammar.ToCNF(t.Grammar)
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(cnf, c))
	}
	return rs
}

func runTest(cnf *grammar.Grammar, c *TestCaseWithMetadata) *TestResult {
	toks := driver.Tokenize(c.TestCase.Sentence, false)
	res, err := driver.Parse(cnf, toks)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	if c.TestCase.Reject {
		if res.Accepted {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("the sentence must be rejected but was accepted"),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	if !res.Accepted {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the sentence must be accepted but was rejected"),
		}
	}

	diffs := tspec.DiffTree(c.TestCase.Output, genTree(res.Tree()).Fill())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func genTree(dTree *driver.Tree) *tspec.Tree {
	if dTree.IsLeaf() {
		return tspec.NewTerminalNode(dTree.Head, dTree.Token)
	}
	return tspec.NewNonTerminalTree(dTree.Head, genTree(dTree.Left), genTree(dTree.Right))
}
