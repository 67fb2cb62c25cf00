package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newShowtimesCmd(a *app) *cobra.Command {
	var theaterID, movieID int

	cmd := &cobra.Command{
		Use:   "showtimes",
		Short: "Show today's showtimes for a theater or a movie",
		Long: `Show today's showtimes.
With --theater the whole schedule of that theater is listed; with --movie every theater of
the selected city showing that movie is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case theaterID != 0 && movieID != 0:
				return errors.New("use either --theater or --movie, not both")
			case theaterID != 0:
				return a.printTheaterShowtimes(cmd, theaterID)
			case movieID != 0:
				return a.printMovieShowtimes(cmd, movieID)
			default:
				return errors.New("--theater or --movie is required")
			}
		},
	}

	cmd.Flags().IntVar(&theaterID, "theater", 0, "theater id")
	cmd.Flags().IntVar(&movieID, "movie", 0, "movie id")
	return cmd
}

func (a *app) printTheaterShowtimes(cmd *cobra.Command, id int) error {
	theater, ok := a.guide.TheaterByID(id)
	if !ok {
		return fmt.Errorf("theater %d not found", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s • %s • %s\n", theater.Name, theater.Location, time.Now().Format(time.DateOnly))
	schedule := a.guide.TheaterSchedule(theater)
	if len(schedule) == 0 {
		fmt.Fprintln(out, "No showtimes available for this theater today.")
		return nil
	}

	t := newTable(out, table.Row{"Movie", "Time", "Screen", "Format"}, 1)
	t.Style().Options.SeparateRows = true
	for _, entry := range schedule {
		var rows []table.Row
		for _, st := range entry.Showtimes {
			rows = append(rows, table.Row{entry.Movie.Title, st.Time, st.Screen, st.Format})
		}
		t.AppendRows(rows, rowConfigAutoMerge)
		t.AppendSeparator()
	}
	t.Render()
	return nil
}

func (a *app) printMovieShowtimes(cmd *cobra.Command, id int) error {
	movie, ok := a.guide.MovieByID(id)
	if !ok {
		return fmt.Errorf("movie %d not found", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s • %s • %s\n", movie.Title, a.city.Name, time.Now().Format(time.DateOnly))
	results := a.guide.MovieShowtimesInCity(id, a.city.Slug)
	if len(results) == 0 {
		fmt.Fprintln(out, "No showtimes available for this movie in your city today.")
		return nil
	}

	t := newTable(out, table.Row{"Theater", "Time", "Screen", "Format"}, 1)
	t.Style().Options.SeparateRows = true
	for _, entry := range results {
		var rows []table.Row
		for _, st := range entry.Showtimes {
			rows = append(rows, table.Row{entry.Theater.Name, st.Time, st.Screen, st.Format})
		}
		t.AppendRows(rows, rowConfigAutoMerge)
		t.AppendSeparator()
	}
	t.Render()
	return nil
}
