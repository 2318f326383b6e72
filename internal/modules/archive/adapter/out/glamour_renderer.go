package out

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	archiveout "ghostnote/internal/modules/archive/port/out"
)

const defaultWidth = 80

type GlamourRenderer struct {
	style string
}

func NewGlamourRenderer(style string) archiveout.BriefRenderer {
	if style == "" {
		style = "dark"
	}
	return GlamourRenderer{style: style}
}

func (g GlamourRenderer) Render(md string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render brief: %w", err)
	}
	return out, nil
}
