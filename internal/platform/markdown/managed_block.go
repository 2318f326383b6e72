package markdown

import "strings"

// Block delimits generated text inside a hand-edited note.
type Block struct {
	Start string
	End   string
}

// Replace swaps the generated text between b's markers, or appends a new
// block when the note has none. Text outside the markers is kept as is.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End

	if start := strings.Index(body, b.Start); start >= 0 {
		if rel := strings.Index(body[start:], b.End); rel >= 0 {
			end := start + rel + len(b.End)
			return body[:start] + block + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

// Extract returns the generated text between b's markers.
func (b Block) Extract(body string) (string, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return "", false
	}
	inner := body[start+len(b.Start):]
	end := strings.Index(inner, b.End)
	if end < 0 {
		return "", false
	}
	return strings.Trim(inner[:end], "\n"), true
}
