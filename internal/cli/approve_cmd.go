package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
)

// eventIDList is a pflag.Value that accepts comma-separated or repeated
// event IDs ("--events evt_1,evt_3 --events evt_4").
type eventIDList []string

var _ pflag.Value = (*eventIDList)(nil)

func (e *eventIDList) String() string { return strings.Join(*e, ",") }

func (e *eventIDList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*e = append(*e, part)
		}
	}
	return nil
}

func (e *eventIDList) Type() string { return "eventIDs" }

func newApproveCmd(app *App) *cobra.Command {
	var events eventIDList
	var all bool

	cmd := &cobra.Command{
		Use:   "approve [SESSION]",
		Short: "Approve suggested events and add them to your calendar",
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

			selected, err := selectEvents(app, session, events, all)
			if err != nil {
				return err
			}

			spin := formatter.NewSpinner("Adding events to your calendar...")
			spin.Start()
			session, err = app.Planner.ApproveEvents(ctx, id, selected)
			spin.Stop()
			if err != nil {
				return err
			}

			printTurnOutcome(session)
			return nil
		},
	}

	cmd.Flags().Var(&events, "events", "Event IDs to approve (comma-separated)")
	cmd.Flags().BoolVar(&all, "all", false, "Approve every suggested event")
	return cmd
}

// selectEvents decides the approved ID set: explicit flags win, otherwise an
// interactive multi-select runs when a terminal is attached.
func selectEvents(app *App, session *domain.PlanSession, flagged []string, all bool) ([]string, error) {
	if all {
		ids := make([]string, 0, len(session.SuggestedEvents))
		for _, evt := range session.SuggestedEvents {
			ids = append(ids, evt.ID)
		}
		return ids, nil
	}
	if len(flagged) > 0 {
		return flagged, nil
	}
	if len(session.SuggestedEvents) == 0 {
		return nil, nil
	}
	if !app.interactive() {
		return nil, fmt.Errorf("no terminal attached; pass --events or --all")
	}

	var selected []string
	options := make([]huh.Option[string], 0, len(session.SuggestedEvents))
	for _, evt := range session.SuggestedEvents {
		label := fmt.Sprintf("%s  %s (%s, %s)", evt.ID, evt.Title, evt.Priority, formatter.FormatMinutes(evt.DurationMinutes))
		options = append(options, huh.NewOption(label, evt.ID).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which events should go on your calendar?").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(tempoHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
