package cmd

import (
	"fmt"
	"sort"
	"strings"

	"bioskop-finder-cli/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

func newTheatersCmd(a *app) *cobra.Command {
	var filter service.TheaterFilter

	cmd := &cobra.Command{
		Use:   "theaters",
		Short: "List theaters in your city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.SortBy != service.SortName && filter.SortBy != service.SortDistance {
				return fmt.Errorf("unknown sort %q", filter.SortBy)
			}
			theaters := service.FilterTheaters(a.guide.TheatersByCity(a.city.Slug), filter)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s • %d theaters\n", a.city.Name, len(theaters))
			if len(theaters) == 0 {
				fmt.Fprintln(out, "No theaters found matching your criteria.")
				return nil
			}

			facilityCount := map[string]int{}
			t := newTable(out, table.Row{"ID", "Theater", "Location", "Distance", "Screens", "Facilities"})
			for _, theater := range theaters {
				t.AppendRow(table.Row{
					theater.ID,
					theater.Name,
					theater.Location,
					theater.Distance,
					theater.Screens,
					joinOrDash(theater.Facilities),
				})
				for _, facility := range theater.Facilities {
					facilityCount[facility]++
				}
			}
			t.Render()

			names := maps.Keys(facilityCount)
			sort.Strings(names)
			summary := make([]string, 0, len(names))
			for _, name := range names {
				summary = append(summary, fmt.Sprintf("%s %d", name, facilityCount[name]))
			}
			if len(summary) > 0 {
				fmt.Fprintf(out, "Facilities: %s\n", strings.Join(summary, " • "))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&filter.Facilities, "facility", nil, "require a facility (repeatable)")
	cmd.Flags().StringVar(&filter.Query, "search", "", "match name or location")
	cmd.Flags().StringVar(&filter.SortBy, "sort", service.SortName, "name or distance")
	return cmd
}
