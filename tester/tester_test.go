package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/kasami/spec"
	tspec "github.com/nihei9/kasami/spec/test"
)

const grammarSrc = `
Variables: S, N, V
Terminals: dog, cat, barks, meows
Start: S
Rules:
S -> N V
N -> dog | cat
V -> barks | meows
`

func TestTester_Run(t *testing.T) {
	tests := []struct {
		caption string
		testSrc string
		error   bool
	}{
		{
			caption: "a matching tree passes",
			testSrc: `Test
---
dog barks
---
(S0 (N 'dog') (V 'barks'))
`,
		},
		{
			caption: "a wildcard kind matches anything",
			testSrc: `Test
---
cat meows
---
(_ (N 'cat') (_ 'meows'))
`,
		},
		{
			caption: "an expected rejection passes",
			testSrc: `Test
---
barks dog
---
`,
		},
		{
			caption: "a tree mismatch fails",
			testSrc: `Test
---
dog barks
---
(S0 (V 'dog') (N 'barks'))
`,
			error: true,
		},
		{
			caption: "an unexpected rejection fails",
			testSrc: `Test
---
dog dog
---
(S0 (N 'dog') (N 'dog'))
`,
			error: true,
		},
		{
			caption: "an unexpected acceptance fails",
			testSrc: `Test
---
dog barks
---
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g, err := spec.ParseGrammar(strings.NewReader(grammarSrc))
			require.NoError(t, err)
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			require.NoError(t, err)

			tester := &Tester{
				Grammar: g,
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
						FilePath: "case.txt",
					},
				},
			}
			rs := tester.Run()
			require.Len(t, rs, 1)
			if tt.error {
				assert.Error(t, rs[0].Error)
				assert.Contains(t, rs[0].String(), "Failed")
			} else {
				assert.NoError(t, rs[0].Error)
				assert.Equal(t, "Passed case.txt", rs[0].String())
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	writeCase := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0600))
	}
	writeCase("accept.txt", `Accept
---
dog barks
---
(S (N 'dog') (V 'barks'))
`)
	writeCase("reject.txt", `Reject
---
barks dog
---
`)
	writeCase("broken.txt", "no delimiters at all\n")

	cs := ListTestCases(dir)
	require.Len(t, cs, 3)
	byName := map[string]*TestCaseWithMetadata{}
	for _, c := range cs {
		byName[filepath.Base(c.FilePath)] = c
	}
	require.NoError(t, byName["accept.txt"].Error)
	require.NotNil(t, byName["accept.txt"].TestCase)
	require.NoError(t, byName["reject.txt"].Error)
	require.NotNil(t, byName["reject.txt"].TestCase)
	assert.True(t, byName["reject.txt"].TestCase.Reject)
	assert.Error(t, byName["broken.txt"].Error)
}

func TestListTestCases_MissingPath(t *testing.T) {
	cs := ListTestCases(filepath.Join(t.TempDir(), "nope"))
	require.Len(t, cs, 1)
	assert.Error(t, cs[0].Error)
}
