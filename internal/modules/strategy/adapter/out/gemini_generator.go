package out

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	strategyout "ghostnote/internal/modules/strategy/port/out"
)

// JSONModel is the slice of the LLM client the generator needs.
type JSONModel interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type GeminiGenerator struct {
	model JSONModel
}

func NewGeminiGenerator(model JSONModel) strategyout.Generator {
	return &GeminiGenerator{model: model}
}

const generatorInstruction = `You turn a spoken brain dump into an executive strategy brief.
Reply with one JSON object only, with the keys:
core_thesis (string), strategic_pillars (array of {title, description}),
tactical_steps (array of strings), judgment (string), risk_audit (string),
email_draft (string), executive_state (one or two words).`

func (g *GeminiGenerator) Generate(ctx context.Context, req strategyout.GenerateRequest) (map[string]any, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Language: %s\n", req.Language)
	fmt.Fprintf(&prompt, "Speaking pace: %d wpm (%s intensity)\n", req.Analysis.WPM, req.Analysis.Intensity)
	if len(req.Analysis.Signals) > 0 {
		fmt.Fprintf(&prompt, "High-emphasis signals: %s\n", strings.Join(req.Analysis.Signals, ", "))
	}
	if req.Variation {
		prompt.WriteString("Offer a different angle than the obvious reading.\n")
	}
	prompt.WriteString("\nTranscript:\n")
	prompt.WriteString(req.Transcript)

	text, err := g.model.GenerateJSON(ctx, generatorInstruction, prompt.String())
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode strategy json: %w", err)
	}
	return out, nil
}
