package domain_test

import (
	"strings"
	"testing"
	"time"

	"ghostnote/internal/modules/archive/domain"
	strategy "ghostnote/internal/modules/strategy/domain"
)

var now = time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC)

func TestNewEntryDefaultsAndValidation(t *testing.T) {
	t.Parallel()
	content := strategy.Content{Scribe: &strategy.Scribe{CoreThesis: "Y"}}

	e, err := domain.New("cos_a_b", now, content, nil, "Scribe", " fr ")
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if e.Mode != strategy.ModeScribe || e.Language != "FR" || e.Timestamp != now.UnixMilli() {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e, _ := domain.New("cos_a_b", now, content, nil, "scribe", ""); e.Language != domain.DefaultLanguage {
		t.Fatalf("language default = %q", e.Language)
	}
	if _, err := domain.New("cos_a_b", now, content, nil, "poet", "EN"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	if _, err := domain.New("cos_a_b", now, strategy.Content{}, nil, "scribe", "EN"); err == nil {
		t.Fatalf("empty content should fail")
	}
	if !e.PublishedAt().Equal(now) {
		t.Fatalf("published at = %v", e.PublishedAt())
	}
}

func TestBriefRendersBothHalves(t *testing.T) {
	t.Parallel()
	e, err := domain.New("cos_a_b", now, strategy.Content{
		Scribe: &strategy.Scribe{
			CoreThesis:       "Focus wins.",
			StrategicPillars: []strategy.Pillar{{Title: "Depth", Description: "Go deep."}},
			TacticalSteps:    []string{"Cut scope", "Hire"},
		},
		Strategist: &strategy.Strategist{Judgment: "Ship.", RiskAudit: "Churn.", EmailDraft: "Team,\nwe ship."},
	}, &strategy.Analysis{Duration: "5m", WPM: 130, Intensity: "Medium", Signals: []string{"Pricing"}}, "strategist", "EN")
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	brief := domain.Brief(e)
	for _, want := range []string{
		"# Focus wins.",
		"### Depth\n\nGo deep.",
		"1. Cut scope\n2. Hire",
		"## Executive Judgment\n\nShip.",
		"> Team,\n> we ship.",
		"- Duration: 5m",
		"- Pace: 130 wpm (Medium)",
		"- Signals: Pricing",
	} {
		if !strings.Contains(brief, want) {
			t.Fatalf("brief missing %q:\n%s", want, brief)
		}
	}
}

func TestTitleFallsBackToJudgment(t *testing.T) {
	t.Parallel()
	e := domain.Entry{Content: strategy.Content{Strategist: &strategy.Strategist{Judgment: "Wait."}}}
	if e.Title() != "Wait." {
		t.Fatalf("title = %q", e.Title())
	}
	if (domain.Entry{}).Title() != "Strategic Brief" {
		t.Fatalf("empty entry title")
	}
}
