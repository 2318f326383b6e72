package domain

import (
	"fmt"
	"strings"
)

// ShareText renders the plain-text form used when copying or sharing a
// result. It is empty when the requested half was never generated.
func ShareText(c Content, mode Mode) string {
	switch mode {
	case ModeScribe:
		if c.Scribe == nil {
			return ""
		}
		pillars := make([]string, 0, len(c.Scribe.StrategicPillars))
		for _, p := range c.Scribe.StrategicPillars {
			pillars = append(pillars, p.Title+"\n"+p.Description)
		}
		steps := make([]string, 0, len(c.Scribe.TacticalSteps))
		for _, s := range c.Scribe.TacticalSteps {
			steps = append(steps, "- "+s)
		}
		return fmt.Sprintf("TRANSCRIPT SYNTHESIS: %s\n\nSTRATEGIC PILLARS:\n%s\n\nNEXT STEPS:\n%s",
			c.Scribe.CoreThesis, strings.Join(pillars, "\n\n"), strings.Join(steps, "\n"))
	case ModeStrategist:
		if c.Strategist == nil {
			return ""
		}
		return fmt.Sprintf("EXECUTIVE JUDGEMENT: %s\n\nRISK AUDIT: %s", c.Strategist.Judgment, c.Strategist.RiskAudit)
	default:
		return ""
	}
}
