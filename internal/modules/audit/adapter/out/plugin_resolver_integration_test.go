package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	auditout "ghostnote/internal/modules/audit/adapter/out"
)

func TestPluginResolverIntegrationAuditorPlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the auditor plugin")
	}
	binPath, checksum := buildAuditorPlugin(t)

	resolver := auditout.NewPluginResolver(binPath, checksum)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	plugin, ok := resolver.(*auditout.PluginResolver)
	if !ok {
		t.Fatalf("unexpected resolver type %T", resolver)
	}
	meta, err := plugin.Metadata(ctx)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "keyword-auditor" {
		t.Fatalf("unexpected plugin name %q", meta.Name)
	}

	req := request()
	req.Prediction = "Revenue will grow twenty percent"
	req.FollowUp = "Revenue did grow, about twenty percent"
	got, err := resolver.Resolve(ctx, req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.AccuracyScore < 80 || got.AccuracyScore > 100 || got.BlindSpot == "" || got.GrowthInsight == "" {
		t.Fatalf("unexpected plugin verdict: %+v", got)
	}
}

func TestPluginResolverRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	bin := filepath.Join(t.TempDir(), "auditor")
	if err := os.WriteFile(bin, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	resolver := auditout.NewPluginResolver(bin, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if _, err := resolver.Resolve(context.Background(), request()); !errors.Is(err, auditout.ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
	if _, err := auditout.NewPluginResolver("", "").Resolve(context.Background(), request()); err == nil {
		t.Fatalf("expected error without binary")
	}
}

func buildAuditorPlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "auditor-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/auditor")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build auditor plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
