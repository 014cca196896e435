package main

import (
	"fmt"

	"github.com/lab47/refpeg"
	"github.com/lab47/refpeg/xref"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the cross-reference grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			rules := xref.NewGrammar(nil).Rules()

			if asTable {
				table := newTable(w, "Rule", "Definition")
				for _, r := range rules {
					table.Append([]string{r.Name(), refpeg.Repr(r)})
				}
				table.Render()

				return nil
			}

			for _, r := range rules {
				fmt.Fprintf(w, "%-14s <- %s\n", r.Name(), refpeg.Repr(r))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "print the rules as a table")

	return cmd
}
