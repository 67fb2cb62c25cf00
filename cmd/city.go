package cmd

import (
	"fmt"
	"strings"

	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/model"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newCityCmd(a *app) *cobra.Command {
	cityCmd := &cobra.Command{
		Use:   "city",
		Short: "Show the selected city",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", a.city.Name, a.city.Slug)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set [NAME]",
		Short: "Select and remember a city",
		Long:  `Select and remember a city. Without NAME an interactive picker is shown.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := promptSelectCity(a.city)
				if err != nil {
					return err
				}
				name = picked
			}

			city, err := resolveCity(name)
			if err != nil {
				return err
			}
			if err := a.saveCity(city); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "City set to %s\n", city.Name)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available cities",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, city := range catalog.Cities() {
				marker := " "
				if city.Slug == a.city.Slug {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-16s %s\n", marker, city.Slug, city.Name)
			}
		},
	}

	cityCmd.AddCommand(setCmd, listCmd)
	return cityCmd
}

func promptSelectCity(current model.City) (string, error) {
	cities := catalog.Cities()
	names := make([]string, 0, len(cities))
	cursor := 0
	for i, city := range cities {
		names = append(names, city.Name)
		if city.Slug == current.Slug {
			cursor = i
		}
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(strings.ToLower(names[index]), strings.ToLower(strings.TrimSpace(input)))
	}

	selectCity := promptui.Select{
		Label:     "Select City",
		Items:     names,
		Size:      10,
		CursorPos: cursor,
		Searcher:  searcher,
	}
	_, name, err := selectCity.Run()
	if err != nil {
		return "", fmt.Errorf("select city: %w", err)
	}
	return name, nil
}
