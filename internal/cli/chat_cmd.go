package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Plan interactively in a chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("chat requires an interactive terminal")
			}
			p := tea.NewProgram(newChatModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
