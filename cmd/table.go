package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

var rowConfigAutoMerge = table.RowConfig{AutoMerge: true}

// newTable returns a writer mirrored to out. Columns listed in merge collapse repeated
// values into a single cell.
func newTable(out io.Writer, header table.Row, merge ...int) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(header, rowConfigAutoMerge)

	configs := make([]table.ColumnConfig, 0, len(merge))
	for _, number := range merge {
		configs = append(configs, table.ColumnConfig{Number: number, AutoMerge: true})
	}
	t.SetColumnConfigs(configs)
	return t
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
