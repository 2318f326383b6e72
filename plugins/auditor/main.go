package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	auditrpc "ghostnote/internal/modules/audit/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *auditrpc.Empty) (*auditrpc.Metadata, error) {
	return &auditrpc.Metadata{Name: "keyword-auditor", Version: "1.0.0"}, nil
}

// Resolve scores a prediction by how many of its keywords the follow-up
// mentions again. It needs no network and always answers the same way for
// the same input.
func (s *server) Resolve(_ context.Context, in *auditrpc.ResolveRequest) (*auditrpc.ResolveResponse, error) {
	if strings.TrimSpace(in.FollowUp) == "" {
		return nil, fmt.Errorf("follow-up is empty")
	}
	predicted := keywords(in.Prediction)
	observed := map[string]bool{}
	for _, w := range keywords(in.FollowUp) {
		observed[w] = true
	}
	hits := 0
	for _, w := range predicted {
		if observed[w] {
			hits++
		}
	}
	score := int32(40)
	if len(predicted) > 0 {
		score = 40 + int32(60*hits/len(predicted))
	}

	resp := &auditrpc.ResolveResponse{AccuracyScore: score}
	switch {
	case score >= 80:
		resp.BlindSpot = "Little was missed; the call held up against what happened."
		resp.GrowthInsight = "Raise the stakes: seal a bolder prediction on a longer horizon."
	case score >= 60:
		resp.BlindSpot = "Part of the outcome came from factors the prediction never named."
		resp.GrowthInsight = "List the second-order drivers before sealing the next call."
	default:
		resp.BlindSpot = "The outcome moved on different variables than the ones predicted."
		resp.GrowthInsight = "Write down what would prove the call wrong before sealing it."
	}
	return resp, nil
}

func keywords(text string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?\"'()%")
		if len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: auditrpc.HandshakeConfig,
		Plugins:         auditrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
