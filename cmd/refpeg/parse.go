package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lab47/refpeg"
	"github.com/lab47/refpeg/xref"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var formats = []string{"json", "yaml", "tree", "text"}

// suggestDistance is the largest edit distance at which an unknown format
// gets a suggestion.
const suggestDistance = 2

func unknownFormat(format string) error {
	best, dist := "", suggestDistance+1
	for _, f := range formats {
		if d := levenshtein.ComputeDistance(format, f); d < dist {
			best, dist = f, d
		}
	}

	if best != "" {
		return fmt.Errorf("unknown format %q, did you mean %q?", format, best)
	}

	return fmt.Errorf("unknown format %q", format)
}

type parseFlags struct {
	root   *rootFlags
	source string
	format string
	debug  bool
	noMemo bool
	stats  bool
}

func newParseCmd(root *rootFlags) *cobra.Command {
	flags := parseFlags{root: root}

	cmd := &cobra.Command{
		Use:   "parse [expression...]",
		Short: "Parse cross-reference expressions",
		Long: `Parse each expression given as an argument. Without arguments, each
non-empty line of the source file (default stdin) is an expression.`,
		Example: `  refpeg parse "Section 3(1)(a) and (b)"
  cat refs.txt | refpeg parse -f yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.run(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "source file path (default stdin)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "output format: json, yaml, tree, text")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "trace every rule the parser tries (implies --log-level trace)")
	cmd.Flags().BoolVar(&flags.noMemo, "no-memo", false, "disable memoization")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print memoization statistics for each expression")

	return cmd
}

func (f *parseFlags) run(cmd *cobra.Command, args []string) error {
	if !slices.Contains(formats, f.format) {
		return unknownFormat(f.format)
	}

	if f.debug {
		f.root.logLevel = "trace"
	}

	log := f.root.logger(cmd.ErrOrStderr())

	inputs := args
	if len(inputs) == 0 {
		var err error
		inputs, err = f.readInputs(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	var st refpeg.Stats

	opts := []refpeg.Option{
		refpeg.WithLogger(log),
		refpeg.WithDebug(f.debug),
		refpeg.WithMemo(!f.noMemo),
	}
	if f.stats {
		opts = append(opts, refpeg.WithStats(&st))
	}

	var failed int

	for _, in := range inputs {
		err := f.parseOne(cmd.OutOrStdout(), in, opts)
		if f.stats {
			log.Debug("parse stats", "input", in, "memo_hits", st.MemoHits, "memo_misses", st.MemoMisses)
			printStats(cmd.ErrOrStderr(), st)
		}

		var se *refpeg.SyntaxError
		if errors.As(err, &se) {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", se)
			continue
		}
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed to parse", failed, len(inputs))
	}

	return nil
}

func (f *parseFlags) readInputs(stdin io.Reader) ([]string, error) {
	src := stdin
	if f.source != "" {
		file, err := os.Open(f.source)
		if err != nil {
			return nil, fmt.Errorf("cannot open the source file %s: %w", f.source, err)
		}
		defer file.Close()
		src = file
	}

	var inputs []string

	s := bufio.NewScanner(src)
	for s.Scan() {
		if line := strings.TrimRight(s.Text(), "\r"); strings.TrimSpace(line) != "" {
			inputs = append(inputs, line)
		}
	}

	return inputs, s.Err()
}

func (f *parseFlags) parseOne(w io.Writer, input string, opts []refpeg.Option) error {
	if f.format == "tree" {
		n, err := xref.NewGrammar(nil).ParseNode(input, opts...)
		if err != nil {
			return err
		}

		refpeg.PrintTree(w, n)
		return nil
	}

	root, err := xref.ParseReferences(input, opts...)
	if err != nil {
		return err
	}

	switch f.format {
	case "text":
		_, err = fmt.Fprintln(w, root.String())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(root); err == nil {
			err = enc.Close()
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(root)
	}

	return err
}
