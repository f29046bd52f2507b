package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tempo/internal/service"
)

// App holds the service surface used by CLI commands.
type App struct {
	Planner service.PlannerService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands (approval picker, chat) require it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Conversational daily planner for calendar and tasks",
	}

	root.AddCommand(
		newPlanCmd(app),
		newReplyCmd(app),
		newApproveCmd(app),
		newSkipCmd(app),
		newShowCmd(app),
		newSessionsCmd(app),
		newResetCmd(app),
		newChatCmd(app),
	)

	return root
}
