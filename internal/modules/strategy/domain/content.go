package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeScribe     Mode = "scribe"
	ModeStrategist Mode = "strategist"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeScribe:
		return ModeScribe, nil
	case ModeStrategist:
		return ModeStrategist, nil
	default:
		return "", fmt.Errorf("unknown mode %q", raw)
	}
}

type Pillar struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Scribe is the synthesis view of a transcript.
type Scribe struct {
	CoreThesis       string
	StrategicPillars []Pillar
	TacticalSteps    []string
}

// Strategist is the executive view: a judgment, its risks and a ready email.
type Strategist struct {
	Judgment   string
	RiskAudit  string
	EmailDraft string
}

// Content is generated strategy output. Either half may be absent.
// It serializes to one flat snake_case object; decoding accepts every
// historical alias through Normalize.
type Content struct {
	Scribe     *Scribe
	Strategist *Strategist
}

// IsZero reports whether neither half carries a field. A half that is
// present but empty does not survive serialization, so it counts as absent.
func (c Content) IsZero() bool {
	return c.Scribe.empty() && c.Strategist.empty()
}

func (s *Scribe) empty() bool {
	return s == nil || (s.CoreThesis == "" && len(s.StrategicPillars) == 0 && len(s.TacticalSteps) == 0)
}

func (s *Strategist) empty() bool {
	return s == nil || (s.Judgment == "" && s.RiskAudit == "" && s.EmailDraft == "")
}

// Finalized reports whether generation produced a thesis or a judgment.
func (c Content) Finalized() bool {
	if c.Scribe != nil && strings.TrimSpace(c.Scribe.CoreThesis) != "" {
		return true
	}
	return c.Strategist != nil && strings.TrimSpace(c.Strategist.Judgment) != ""
}

// Clone returns a deep copy in stored form: the value a later decode of the
// stored JSON yields. Snapshots therefore never share slices with drafts and
// compare equal to what is read back.
func (c Content) Clone() Content {
	raw, err := c.MarshalJSON()
	if err != nil {
		return Content{}
	}
	var out Content
	if err := out.UnmarshalJSON(raw); err != nil {
		return Content{}
	}
	return out
}

type flatContent struct {
	CoreThesis       string   `json:"core_thesis,omitempty"`
	StrategicPillars []Pillar `json:"strategic_pillars,omitempty"`
	TacticalSteps    []string `json:"tactical_steps,omitempty"`
	Judgment         string   `json:"judgment,omitempty"`
	RiskAudit        string   `json:"risk_audit,omitempty"`
	EmailDraft       string   `json:"email_draft,omitempty"`
}

func (c Content) MarshalJSON() ([]byte, error) {
	flat := flatContent{}
	if c.Scribe != nil {
		flat.CoreThesis = c.Scribe.CoreThesis
		flat.StrategicPillars = c.Scribe.StrategicPillars
		flat.TacticalSteps = c.Scribe.TacticalSteps
	}
	if c.Strategist != nil {
		flat.Judgment = c.Strategist.Judgment
		flat.RiskAudit = c.Strategist.RiskAudit
		flat.EmailDraft = c.Strategist.EmailDraft
	}
	return json.Marshal(flat)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Normalize(raw)
	return nil
}

// Normalize maps every historical field alias onto the canonical content
// shape. Unknown fields are dropped.
func Normalize(raw map[string]any) Content {
	out := Content{}
	if raw == nil {
		return out
	}

	free := raw
	if m, ok := raw["free_tier"].(map[string]any); ok {
		free = m
	}
	pro := raw
	if m, ok := raw["pro_tier"].(map[string]any); ok {
		pro = m
	}

	scribe := Scribe{
		CoreThesis:       str(free["core_thesis"]),
		StrategicPillars: pillars(free["strategic_pillars"]),
		TacticalSteps:    strs(free["tactical_steps"]),
	}
	if !scribe.empty() {
		out.Scribe = &scribe
	}

	strategist := Strategist{
		Judgment:   firstNonEmpty(str(pro["judgment"]), str(pro["executive_judgement"])),
		RiskAudit:  firstNonEmpty(str(pro["riskAudit"]), str(pro["risk_audit"])),
		EmailDraft: firstNonEmpty(email(pro["emailDraft"]), email(pro["email_draft"])),
	}
	if !strategist.empty() {
		out.Strategist = &strategist
	}
	return out
}

func pillars(v any) []Pillar {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Pillar, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Pillar{
			Title:       str(m["title"]),
			Description: firstNonEmpty(str(m["rich_description"]), str(m["description"])),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func strs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			continue
		}
		out = append(out, str(item))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func email(v any) string {
	if m, ok := v.(map[string]any); ok {
		return str(m["body"])
	}
	return str(v)
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
