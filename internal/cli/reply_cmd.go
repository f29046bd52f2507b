package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
)

func newReplyCmd(app *App) *cobra.Command {
	var sessionRef string

	cmd := &cobra.Command{
		Use:   "reply ANSWER",
		Short: "Answer the planner's clarification question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, sessionRef)
			if err != nil {
				return err
			}

			reply := strings.Join(args, " ")
			if strings.TrimSpace(reply) == "" {
				return fmt.Errorf("answer must not be empty")
			}

			spin := formatter.NewSpinner("Thinking...")
			spin.Start()
			session, err := app.Planner.SubmitClarification(ctx, id, reply)
			spin.Stop()
			if err != nil {
				return err
			}

			printTurnOutcome(session)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionRef, "session", "", "Session ID or prefix (default: most recent)")
	return cmd
}
