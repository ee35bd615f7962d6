package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"fitx/internal/modules/plugin/domain"
	"fitx/internal/modules/plugin/dto"
	"fitx/internal/modules/plugin/service"
	"fitx/internal/modules/plugin/usecase"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct{}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (fakeHost) Insights(_ context.Context, _ domain.Manifest, req domain.InsightRequest) ([]string, error) {
	return []string{req.Period + " looks " + req.Rating}, nil
}

func TestUsecaseListDoctorAndInsights(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, nil))

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" || list[0].Capabilities[0] != "insights" {
		t.Fatalf("unexpected list: %+v", list)
	}

	doctor, err := uc.Doctor(context.Background(), "")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(doctor) != 1 || !doctor[0].LifecycleOK {
		t.Fatalf("unexpected doctor result: %+v", doctor)
	}

	out, err := uc.CollectInsights(context.Background(), dto.InsightsInput{UserID: "ana", Period: "Last 7 days", WindowDays: 7, Rating: "Fair"})
	if err != nil {
		t.Fatalf("collect insights: %v", err)
	}
	if len(out.Insights) != 1 || out.Insights[0] != "Last 7 days looks Fair" || len(out.Skipped) != 0 {
		t.Fatalf("unexpected insights: %+v", out)
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	payload := []byte("plugin")
	if err := os.WriteFile(binPath, payload, 0o755); err != nil {
		t.Fatalf("write plugin bin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return domain.Manifest{
		Name:         "p1",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityInsights},
	}
}
