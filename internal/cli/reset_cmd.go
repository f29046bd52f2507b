package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset SESSION",
		Short: "Delete a planning session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.ResetSession(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed session %s\n", id)
			return nil
		},
	}
}
