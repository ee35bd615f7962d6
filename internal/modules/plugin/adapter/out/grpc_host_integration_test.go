package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	pluginout "fitx/internal/modules/plugin/adapter/out"
	"fitx/internal/modules/plugin/domain"
)

func TestGRPCHostIntegrationReferencePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the reference plugin")
	}
	binPath, checksum := buildReferencePlugin(t)
	manifest := domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityInsights},
	}

	host := pluginout.NewGRPCHost(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" || len(metadata.Capabilities) != 1 || metadata.Capabilities[0] != domain.CapabilityInsights {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	lines, err := host.Insights(ctx, manifest, domain.InsightRequest{
		UserID:              "ana",
		Period:              "Last 7 days",
		WindowDays:          7,
		WorkoutsCompleted:   2,
		TargetWorkouts:      5,
		TotalActiveMinutes:  90,
		TotalCaloriesBurned: 600,
		CaloriesConsumed:    1400,
		ConsistencyPercent:  40,
		Rating:              "Fair",
	})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(lines) == 0 || !strings.Contains(lines[0], "3 more") {
		t.Fatalf("unexpected insights: %q", lines)
	}
}

func buildReferencePlugin(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "reference-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference plugin: %v\n%s", err, string(out))
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
