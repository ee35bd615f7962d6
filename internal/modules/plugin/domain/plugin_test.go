package domain_test

import (
	"strings"
	"testing"

	"fitx/internal/modules/plugin/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	sha := strings.Repeat("a", 64)
	insights := []domain.Capability{domain.CapabilityInsights}
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: sha, Enabled: true, Capabilities: insights}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: sha, Capabilities: insights}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: sha, Capabilities: insights}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: sha, Capabilities: insights}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: strings.Repeat("A", 64), Capabilities: insights}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: sha}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: sha, Capabilities: []domain.Capability{"insights", "insights"}}, shouldErr: true},
		{name: "unknown capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: sha, Capabilities: []domain.Capability{"command"}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestInsightRequestValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.InsightRequest{UserID: "ana", WindowDays: 7}).Validate(); err != nil {
		t.Fatalf("validate request: %v", err)
	}
	if err := (domain.InsightRequest{WindowDays: 7}).Validate(); err == nil {
		t.Fatalf("expected missing user error")
	}
	if err := (domain.InsightRequest{UserID: "ana"}).Validate(); err == nil {
		t.Fatalf("expected window error")
	}
}
