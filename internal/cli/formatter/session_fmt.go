package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// RenderConversation renders the session transcript with role-colored
// speaker labels.
func RenderConversation(turns []domain.ConversationTurn) string {
	if len(turns) == 0 {
		return Dim("(no conversation yet)")
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(StyleGreen.Render("You: "))
		default:
			b.WriteString(StylePurple.Render("Tempo: "))
		}
		b.WriteString(turn.Content)
	}
	return b.String()
}

// RenderSuggestedEvents renders the approval table for suggested events.
func RenderSuggestedEvents(events []domain.EventCandidate) string {
	if len(events) == 0 {
		return Dim("No events to approve.")
	}

	headers := []string{"ID", "TIME", "EVENT", "PRIORITY", "TYPE", "DURATION"}
	rows := make([][]string, 0, len(events))
	for _, evt := range events {
		rows = append(rows, []string{
			StyleBold.Render(evt.ID),
			eventSpan(evt),
			evt.Title,
			PriorityBadge(evt.Priority),
			evt.Type,
			FormatMinutes(evt.DurationMinutes),
		})
	}
	return RenderBox("Suggested Events", RenderTable(headers, rows))
}

// RenderSessionStatus renders the one-line state summary used by show/plan.
func RenderSessionStatus(s *domain.PlanSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", TruncID(s.ID), PhasePill(s.Phase))
	if s.Confidence > 0 {
		fmt.Fprintf(&b, "  %s", Dim(fmt.Sprintf("confidence %.2f", s.Confidence)))
	}
	return b.String()
}

// NextActionHint returns the follow-up command suggestion for a parked phase.
func NextActionHint(s *domain.PlanSession) string {
	switch s.Phase {
	case domain.PhaseAwaitingClarification:
		return Dim(fmt.Sprintf("Answer with: tempo reply %s \"...\"", shortID(s.ID)))
	case domain.PhaseAwaitingApproval:
		return Dim(fmt.Sprintf("Approve with: tempo approve %s  (or: tempo skip %s)", shortID(s.ID), shortID(s.ID)))
	default:
		return ""
	}
}

func eventSpan(evt domain.EventCandidate) string {
	start, err := time.Parse(domain.BlockTimeLayout, evt.StartTime)
	if err != nil {
		return evt.StartTime
	}
	end, err := time.Parse(domain.BlockTimeLayout, evt.EndTime)
	if err != nil {
		return evt.StartTime
	}
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
