package cmd

import (
	"bioskop-finder-cli/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	theater, _ := cmd.Flags().GetString("theater")
	show, _ := cmd.Flags().GetBool("show")

	model := tui.New(tui.Options{
		Guide:       a.guide,
		Store:       a.store,
		Logger:      a.logger,
		City:        a.city,
		Theater:     theater,
		ShowTheater: show,
	})
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
