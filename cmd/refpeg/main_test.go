package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestParseCmd(t *testing.T) {
	t.Run("prints canonical text", func(t *testing.T) {
		r := require.New(t)

		out, _, err := execute(t, "", "parse", "-f", "text", "Section  3(1)(a)  and  (b)")
		r.NoError(err)
		r.Equal("Section 3(1)(a) and (b)\n", out)
	})

	t.Run("prints json", func(t *testing.T) {
		r := require.New(t)

		out, _, err := execute(t, "", "parse", "Section 3(1) thereof")
		r.NoError(err)

		var root struct {
			References []struct {
				MainRef string `json:"main_ref"`
			} `json:"references"`
			Of string `json:"of"`
		}

		r.NoError(json.Unmarshal([]byte(out), &root))
		r.Len(root.References, 1)
		r.Equal("3", root.References[0].MainRef)
		r.Equal("thereof", root.Of)
	})

	t.Run("prints yaml", func(t *testing.T) {
		r := require.New(t)

		out, _, err := execute(t, "", "parse", "-f", "yaml", "Section 3(1)")
		r.NoError(err)
		r.Contains(out, "main_ref:")
		r.Contains(out, "ref: \"1\"")
	})

	t.Run("prints the parse tree", func(t *testing.T) {
		r := require.New(t)

		out, _, err := execute(t, "", "parse", "-f", "tree", "Section 3(1)")
		r.NoError(err)
		r.True(strings.HasPrefix(out, `root "Section 3(1)"`))
		r.Contains(out, `main_ref "3"`)
	})

	t.Run("reads expressions from stdin", func(t *testing.T) {
		r := require.New(t)

		out, _, err := execute(t, "Section 3(1)\n\nSection 4(a) or (b)\n", "parse", "-f", "text")
		r.NoError(err)
		r.Equal("Section 3(1)\nSection 4(a) or (b)\n", out)
	})

	t.Run("reads expressions from a file", func(t *testing.T) {
		r := require.New(t)

		path := filepath.Join(t.TempDir(), "refs.txt")
		r.NoError(os.WriteFile(path, []byte("Section 9(z)\r\n"), 0o644))

		out, _, err := execute(t, "", "parse", "-f", "text", "-s", path)
		r.NoError(err)
		r.Equal("Section 9(z)\n", out)
	})

	t.Run("reports syntax errors", func(t *testing.T) {
		r := require.New(t)

		out, errOut, err := execute(t, "", "parse", "-f", "text", "Section 3(1)", "Section")
		r.EqualError(err, "1 of 2 expressions failed to parse")

		r.Equal("Section 3(1)\n", out)
		r.Contains(errOut, "Line 1: expected one of:")
		r.Contains(errOut, "[ \\t] from WS")
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		r := require.New(t)

		_, _, err := execute(t, "", "parse", "-f", "csv", "Section 3(1)")
		r.EqualError(err, `unknown format "csv"`)
	})

	t.Run("parses the same without memoization", func(t *testing.T) {
		r := require.New(t)

		on, _, err := execute(t, "", "parse", "Section 3(1) and Section 4(2)")
		r.NoError(err)

		off, _, err := execute(t, "", "parse", "--no-memo", "Section 3(1) and Section 4(2)")
		r.NoError(err)

		r.Equal(on, off)
	})

	t.Run("suggests a close format", func(t *testing.T) {
		r := require.New(t)

		_, _, err := execute(t, "", "parse", "-f", "jsno", "Section 3(1)")
		r.EqualError(err, `unknown format "jsno", did you mean "json"?`)
	})

	t.Run("prints statistics", func(t *testing.T) {
		r := require.New(t)

		_, errOut, err := execute(t, "", "parse", "--stats", "Section 3(1)")
		r.NoError(err)
		r.Contains(errOut, "memo_hits")
		r.Contains(errOut, "eval_sub_ref")
		r.NotContains(errOut, "parse stats")

		_, errOut, err = execute(t, "", "--log-level", "debug", "parse", "--stats", "Section 3(1)")
		r.NoError(err)
		r.Contains(errOut, "parse stats")
	})
}

func TestGrammarCmd(t *testing.T) {
	r := require.New(t)

	out, _, err := execute(t, "", "grammar")
	r.NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	r.Len(lines, 10)

	r.True(strings.HasPrefix(lines[0], "root "))
	r.Contains(out, `sub_ref        <- "(" alpha_num_dot ")"`)
	r.Contains(out, `WS             <- [ \t]`)
}

func TestGrammarCmdTable(t *testing.T) {
	r := require.New(t)

	out, _, err := execute(t, "", "grammar", "--table")
	r.NoError(err)

	r.Contains(out, "Definition")
	r.Contains(out, `"(" alpha_num_dot ")"`)
	r.Contains(out, "| alpha_num_dot")
}
