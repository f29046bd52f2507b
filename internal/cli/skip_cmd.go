package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newSkipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip [SESSION]",
		Short: "Decline the suggested events and finish the session",
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

			session, err := app.Planner.SkipEvents(ctx, id)
			if err != nil {
				return err
			}

			printTurnOutcome(session)
			return nil
		},
	}
}
