package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/repository"
)

// resolveSessionID maps a user-supplied session reference onto a stored
// session ID. Accepts a full ID, a unique prefix, or "last" (also the
// default when empty) for the most recently updated session.
func resolveSessionID(ctx context.Context, app *App, ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" || ref == "last" {
		summaries, err := app.Planner.ListSessions(ctx)
		if err != nil {
			return "", err
		}
		if len(summaries) == 0 {
			return "", errors.New("no sessions found; start one with: tempo plan \"...\"")
		}
		return summaries[0].ID, nil
	}

	if _, err := app.Planner.GetSession(ctx, ref); err == nil {
		return ref, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	summaries, err := app.Planner.ListSessions(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, sum := range summaries {
		if strings.HasPrefix(sum.ID, ref) {
			matches = append(matches, sum.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no session matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}
