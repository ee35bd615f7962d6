package out_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	progressadapter "fitx/internal/modules/progress/adapter/out"
	"fitx/internal/modules/progress/domain"
	progressout "fitx/internal/modules/progress/port/out"
	"fitx/internal/platform/markdown"
)

func TestVaultReportStoreWritesFrontmatterNote(t *testing.T) {
	t.Parallel()
	dataDir := t.TempDir()
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	summary := domain.Summarize("tg:42", at, 7, nil, nil)
	store := progressadapter.NewVaultReportStore(dataDir)

	path, err := store.Save(context.Background(), progressout.Report{ID: "rep-1", Summary: summary, Markdown: "# body\n"})
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	want := filepath.Join(dataDir, "reports", "2026", "02", "03", "040506-tg-42-7d-rep1.md")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	meta := map[string]any{}
	body, err := markdown.Split(string(raw), &meta)
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if meta["id"] != "rep-1" || meta["user"] != "tg:42" || meta["rating"] != "Needs Improvement" {
		t.Fatalf("unexpected frontmatter: %v", meta)
	}
	if !strings.Contains(body, "# body") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestVaultReportStoreKeepsReportsFromTheSameSecond(t *testing.T) {
	t.Parallel()
	dataDir := t.TempDir()
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	summary := domain.Summarize("ana", at, 7, nil, nil)
	store := progressadapter.NewVaultReportStore(dataDir)

	first, err := store.Save(context.Background(), progressout.Report{ID: "0b5c1f2e-aaaa-4bbb-8ccc-000000000001", Summary: summary, Markdown: "# scheduled\n"})
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.Save(context.Background(), progressout.Report{ID: "9d7e3a10-aaaa-4bbb-8ccc-000000000002", Summary: summary, Markdown: "# manual\n"})
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatalf("both reports written to %s", first)
	}
	for path, want := range map[string]string{first: "# scheduled", second: "# manual"} {
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !strings.Contains(string(raw), want) {
			t.Fatalf("%s lost its body: %q", path, raw)
		}
	}

	_, err = store.Save(context.Background(), progressout.Report{ID: "0b5c1f2e-aaaa-4bbb-8ccc-000000000001", Summary: summary, Markdown: "# again\n"})
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected existing report to be kept, got %v", err)
	}
}
