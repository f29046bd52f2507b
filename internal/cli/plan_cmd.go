package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan INTENT",
		Short: "Start a planning session from what you want to accomplish",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := strings.Join(args, " ")
			if strings.TrimSpace(intent) == "" {
				return fmt.Errorf("intent must not be empty")
			}

			spin := formatter.NewSpinner("Planning your day...")
			spin.Start()
			session, err := app.Planner.StartSession(context.Background(), intent)
			spin.Stop()
			if err != nil {
				return err
			}

			printTurnOutcome(session)
			return nil
		},
	}
}

// printTurnOutcome prints the assistant's latest message plus whatever the
// parked phase needs from the user next.
func printTurnOutcome(s *domain.PlanSession) {
	fmt.Println(formatter.RenderSessionStatus(s))
	fmt.Println()

	if msg := lastAssistantMessage(s); msg != "" {
		fmt.Println(msg)
	}

	if s.Phase == domain.PhaseAwaitingApproval && len(s.SuggestedEvents) > 0 {
		fmt.Println()
		fmt.Println(formatter.RenderSuggestedEvents(s.SuggestedEvents))
	}

	if hint := formatter.NextActionHint(s); hint != "" {
		fmt.Println()
		fmt.Println(hint)
	}
}

func lastAssistantMessage(s *domain.PlanSession) string {
	for i := len(s.Conversation) - 1; i >= 0; i-- {
		if s.Conversation[i].Role == domain.RoleAssistant {
			return s.Conversation[i].Content
		}
	}
	return ""
}
