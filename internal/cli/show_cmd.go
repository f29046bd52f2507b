package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
)

func newShowCmd(app *App) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "show [SESSION]",
		Short: "Show a session's conversation and current state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			id, err := resolveSessionID(ctx, app, ref)
			if err != nil {
				return err
			}

			session, err := app.Planner.GetSession(ctx, id)
			if err != nil {
				return err
			}

			fmt.Println(formatter.RenderSessionStatus(session))
			fmt.Println()
			fmt.Println(formatter.RenderConversation(session.Conversation))

			if session.Phase == domain.PhaseAwaitingApproval && len(session.SuggestedEvents) > 0 {
				fmt.Println()
				fmt.Println(formatter.RenderSuggestedEvents(session.SuggestedEvents))
			}

			if full {
				fmt.Println()
				fmt.Println(formatter.Header("Context"))
				fmt.Println(session.CalendarContext)
				fmt.Println()
				fmt.Println(session.TodoContext)
				if session.Analysis != "" {
					fmt.Println()
					fmt.Println(formatter.Header("Analysis"))
					fmt.Println(session.Analysis)
				}
			}

			if hint := formatter.NextActionHint(session); hint != "" {
				fmt.Println()
				fmt.Println(hint)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Include gathered context and analysis")
	return cmd
}
