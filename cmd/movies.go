package cmd

import (
	"fmt"

	"bioskop-finder-cli/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newMoviesCmd(a *app) *cobra.Command {
	var filter service.MovieFilter
	var tab string

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List movies playing in your city",
		Long:  `List the movies available in the selected city, or every upcoming release with --tab upcoming.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tab != service.TabNowPlaying && tab != service.TabUpcoming {
				return fmt.Errorf("unknown tab %q", tab)
			}
			movies := service.FilterMovies(a.guide.MoviesForTab(a.city.Slug, tab), filter)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s • %s\n", a.city.Name, tab)
			if len(movies) == 0 {
				fmt.Fprintln(out, "No movies found matching your criteria.")
				return nil
			}

			t := newTable(out, table.Row{"ID", "Title", "Genre", "Rating", "Duration", "Format"})
			for _, m := range movies {
				t.AppendRow(table.Row{m.ID, m.Title, m.Genre, m.Rating, m.Duration, joinOrDash(m.Format)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", service.TabNowPlaying, "now-playing or upcoming")
	cmd.Flags().StringVar(&filter.Genre, "genre", service.AllGenres, "genre filter")
	cmd.Flags().StringVar(&filter.Query, "search", "", "match title or genre")
	cmd.Flags().StringVar(&filter.SortBy, "sort", service.SortPopularity, "popularity or title")
	return cmd
}
