package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
)

func newSessionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List planning sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Planner.ListSessions(context.Background())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			headers := []string{"ID", "PHASE", "STARTED", "UPDATED"}
			rows := make([][]string, 0, len(summaries))
			for _, sum := range summaries {
				rows = append(rows, []string{
					formatter.TruncID(sum.ID),
					formatter.PhasePill(sum.Phase),
					formatter.HumanTimestamp(sum.CreatedAt),
					formatter.HumanTimestamp(sum.UpdatedAt),
				})
			}

			fmt.Print(formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
