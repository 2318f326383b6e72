package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	auditrpc "ghostnote/internal/modules/audit/adapter/out/rpc"
	"ghostnote/internal/modules/audit/domain"
	auditout "ghostnote/internal/modules/audit/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 30 * time.Second
)

var ErrChecksumMismatch = errors.New("auditor plugin checksum mismatch")

// PluginResolver runs an out-of-process auditor over go-plugin gRPC. The
// plugin is started per audit and killed afterwards.
type PluginResolver struct {
	binary string
	sha256 string
}

func NewPluginResolver(binary, checksum string) auditout.Resolver {
	return &PluginResolver{binary: binary, sha256: strings.ToLower(strings.TrimSpace(checksum))}
}

func (r *PluginResolver) Name() string { return "plugin" }

func (r *PluginResolver) Resolve(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := r.verify(); err != nil {
		return domain.Result{}, err
	}
	client, closeFn, err := r.connect(defaultStartTimeout)
	if err != nil {
		return domain.Result{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Resolve(callCtx, &auditrpc.ResolveRequest{
		WagerID:        req.WagerID,
		Prediction:     req.Prediction,
		Days:           int32(req.Days),
		SealedAtUnixMS: req.SealedAt.UnixMilli(),
		FollowUp:       req.FollowUp,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Result{}, fmt.Errorf("auditor plugin timed out: %w", err)
		}
		return domain.Result{}, fmt.Errorf("resolve: %w", err)
	}
	return domain.Result{
		AccuracyScore: int(response.AccuracyScore),
		BlindSpot:     response.BlindSpot,
		GrowthInsight: response.GrowthInsight,
	}, nil
}

// Metadata starts the plugin and reports its name and version.
func (r *PluginResolver) Metadata(ctx context.Context) (auditrpc.Metadata, error) {
	client, closeFn, err := r.connect(defaultStartTimeout)
	if err != nil {
		return auditrpc.Metadata{}, err
	}
	defer closeFn()
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return auditrpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (r *PluginResolver) verify() error {
	if r.binary == "" {
		return fmt.Errorf("auditor plugin binary is not configured")
	}
	if r.sha256 == "" {
		return nil
	}
	payload, err := os.ReadFile(r.binary)
	if err != nil {
		return fmt.Errorf("read auditor plugin: %w", err)
	}
	sum := sha256.Sum256(payload)
	if hex.EncodeToString(sum[:]) != r.sha256 {
		return ErrChecksumMismatch
	}
	return nil
}

func (r *PluginResolver) connect(startTimeout time.Duration) (auditrpc.AuditorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  auditrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          auditrpc.PluginMap(nil),
		Cmd:              exec.Command(r.binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start auditor plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(auditrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense auditor plugin: %w", err)
	}
	typed, ok := raw.(auditrpc.AuditorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("auditor rpc client type mismatch")
	}
	return typed, closeFn, nil
}

// callContext applies the default timeout only when the caller set none.
func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
