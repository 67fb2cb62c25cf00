package cmd

import (
	"errors"
	"fmt"
	"strings"

	"bioskop-finder-cli/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search movies and theaters",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.guide.Search(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if errors.Is(err, service.ErrNoResults) {
				fmt.Fprintln(out, err.Error())
				return nil
			}
			if err != nil {
				return err
			}

			if len(results.Movies) > 0 {
				fmt.Fprintln(out, "Movies")
				t := newTable(out, table.Row{"ID", "Title", "Genre", "Status"})
				for _, m := range results.Movies {
					t.AppendRow(table.Row{m.ID, m.Title, m.Genre, m.Status})
				}
				t.Render()
			}
			if len(results.Theaters) > 0 {
				fmt.Fprintln(out, "Theaters")
				t := newTable(out, table.Row{"ID", "Theater", "Location", "City"})
				for _, theater := range results.Theaters {
					t.AppendRow(table.Row{theater.ID, theater.Name, theater.Location, theater.City})
				}
				t.Render()
			}
			return nil
		},
	}
}
