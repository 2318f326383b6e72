package domain

import (
	"fmt"
	"strings"
)

// Brief renders the entry as markdown, scribe half first.
func Brief(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", e.Title())

	if s := e.Content.Scribe; s != nil {
		if len(s.StrategicPillars) > 0 {
			b.WriteString("\n## Strategic Pillars\n")
			for _, p := range s.StrategicPillars {
				fmt.Fprintf(&b, "\n### %s\n\n%s\n", p.Title, p.Description)
			}
		}
		if len(s.TacticalSteps) > 0 {
			b.WriteString("\n## Tactical Steps\n\n")
			for i, step := range s.TacticalSteps {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step)
			}
		}
	}

	if st := e.Content.Strategist; st != nil {
		if st.Judgment != "" {
			fmt.Fprintf(&b, "\n## Executive Judgment\n\n%s\n", st.Judgment)
		}
		if st.RiskAudit != "" {
			fmt.Fprintf(&b, "\n## Risk Audit\n\n%s\n", st.RiskAudit)
		}
		if st.EmailDraft != "" {
			fmt.Fprintf(&b, "\n## Email Draft\n\n%s\n", quote(st.EmailDraft))
		}
	}

	if a := e.Analysis; a != nil {
		b.WriteString("\n## Emphasis Audit\n\n")
		if a.Duration != "" {
			fmt.Fprintf(&b, "- Duration: %s\n", a.Duration)
		}
		if a.WPM > 0 {
			fmt.Fprintf(&b, "- Pace: %d wpm (%s)\n", a.WPM, a.Intensity)
		}
		if a.ExecutiveState != "" {
			fmt.Fprintf(&b, "- Executive state: %s\n", a.ExecutiveState)
		}
		if len(a.Signals) > 0 {
			fmt.Fprintf(&b, "- Signals: %s\n", strings.Join(a.Signals, ", "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func quote(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
