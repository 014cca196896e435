package main

import (
	"io"
	"strconv"

	"github.com/lab47/refpeg"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	alignment := make([]int, len(header))
	for i := range alignment {
		alignment[i] = tablewriter.ALIGN_LEFT
	}
	table.SetColumnAlignment(alignment)

	return table
}

func printStats(w io.Writer, st refpeg.Stats) {
	table := newTable(w, "Name", "Value")

	table.Append([]string{"memo_hits", strconv.Itoa(st.MemoHits)})
	table.Append([]string{"memo_misses", strconv.Itoa(st.MemoMisses)})
	table.Append([]string{"max_pos", strconv.Itoa(st.MaxPos)})

	rules := maps.Keys(st.Evaluations)
	slices.Sort(rules)

	for _, name := range rules {
		table.Append([]string{"eval_" + name, strconv.Itoa(st.Evaluations[name])})
	}

	table.Render()
}
