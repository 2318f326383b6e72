package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

const (
	IntensityLow    = "Low"
	IntensityMedium = "Medium"
	IntensityHigh   = "High"

	DefaultExecutiveState = "Reflective"

	maxSignals = 5
)

// Analysis is the emphasis audit of one recording.
type Analysis struct {
	Duration       string   `json:"duration"`
	WPM            int      `json:"wpm"`
	Intensity      string   `json:"intensity"`
	ExecutiveState string   `json:"executive_state"`
	Signals        []string `json:"signals,omitempty"`
}

func (a *Analysis) Clone() *Analysis {
	if a == nil {
		return nil
	}
	out := *a
	out.Signals = append([]string(nil), a.Signals...)
	return &out
}

// EmphasisAudit measures speaking pace. A zero duration means the length is
// unknown (uploaded text) and is treated as one minute.
func EmphasisAudit(transcript string, duration time.Duration, executiveState string) Analysis {
	secs := int(duration / time.Second)
	if secs <= 0 {
		secs = 60
	}
	words := len(strings.Fields(transcript))
	wpm := int(float64(words)/(float64(secs)/60) + 0.5)

	intensity := IntensityMedium
	if wpm < 100 {
		intensity = IntensityLow
	}
	if wpm > 150 {
		intensity = IntensityHigh
	}
	if strings.TrimSpace(executiveState) == "" {
		executiveState = DefaultExecutiveState
	}
	return Analysis{
		Duration:       fmt.Sprintf("%dm %ds", secs/60, secs%60),
		WPM:            wpm,
		Intensity:      intensity,
		ExecutiveState: executiveState,
		Signals:        Signals(transcript),
	}
}

const strippedPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// Signals returns up to five repeated keywords, most frequent first.
func Signals(transcript string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(transcript))

	counts := map[string]int{}
	order := []string{}
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	repeated := make([]string, 0, len(order))
	for _, word := range order {
		if counts[word] > 1 {
			repeated = append(repeated, word)
		}
	}
	slices.SortStableFunc(repeated, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(repeated) > maxSignals {
		repeated = repeated[:maxSignals]
	}
	out := make([]string, 0, len(repeated))
	for _, word := range repeated {
		out = append(out, capitalize(word))
	}
	return out
}

func capitalize(word string) string {
	r := []rune(word)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var stopWords = func() map[string]struct{} {
	words := strings.Fields(`
a an the and or but if then else when at from by for with about against
between into through during before after above below to up down in out on
off over under again further once here there all any both each few more most
other some such no nor not only own same so than too very s t can will just
don should now i me my myself we our ours ourselves you your yours yourself
yourselves he him his himself she her hers herself it its itself they them
their theirs themselves what which who whom this that these those am is are
was were be been being have has had having do does did doing would could
ought i'm you're he's she's it's we're they're i've you've we've they've i'd
you'd he'd she'd we'd they'd i'll you'll he'll she'll we'll they'll isn't
aren't wasn't weren't hasn't haven't hadn't doesn't don't didn't won't
wouldn't can't couldn't shouldn't mustn't needn't shan't mightn't let's
that's who's what's here's there's when's where's why's how's`)
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}()
