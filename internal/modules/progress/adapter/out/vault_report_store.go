package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	progressout "fitx/internal/modules/progress/port/out"
	"fitx/internal/platform/markdown"
	"fitx/internal/platform/slug"
)

type reportFrontmatter struct {
	ID                 string   `yaml:"id"`
	Type               string   `yaml:"type"`
	User               string   `yaml:"user"`
	GeneratedAt        string   `yaml:"generated_at"`
	WindowDays         int      `yaml:"window_days"`
	WorkoutsCompleted  int      `yaml:"workouts_completed"`
	TargetWorkouts     int      `yaml:"target_workouts"`
	ConsistencyPercent int      `yaml:"consistency_percent"`
	Rating             string   `yaml:"rating"`
	GoalStatus         string   `yaml:"goal_status"`
	Tags               []string `yaml:"tags"`
}

// VaultReportStore writes reports as Markdown notes under <dataDir>/reports/YYYY/MM/DD.
type VaultReportStore struct {
	dataDir string
}

func NewVaultReportStore(dataDir string) progressout.ReportStore {
	return &VaultReportStore{dataDir: dataDir}
}

func (s *VaultReportStore) Save(_ context.Context, report progressout.Report) (string, error) {
	summary := report.Summary
	at := summary.GeneratedAt.UTC()
	name := fmt.Sprintf("%s-%s-%dd-%s.md", at.Format("150405"), slug.Make(summary.UserID), summary.WindowDays, shortID(report.ID))
	path := filepath.Join(s.dataDir, "reports", at.Format("2006"), at.Format("01"), at.Format("02"), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	meta := reportFrontmatter{
		ID:                 report.ID,
		Type:               "progress_report",
		User:               summary.UserID,
		GeneratedAt:        at.Format("2006-01-02T15:04:05Z07:00"),
		WindowDays:         summary.WindowDays,
		WorkoutsCompleted:  summary.Workouts.Completed,
		TargetWorkouts:     summary.Workouts.Target,
		ConsistencyPercent: summary.Consistency.Percent,
		Rating:             summary.Consistency.Rating,
		GoalStatus:         summary.Goal.Status,
		Tags:               []string{"fitx", "report"},
	}
	rendered, err := markdown.Render(meta, report.Markdown)
	if err != nil {
		return "", err
	}
	// Reports are immutable; an existing file is never replaced.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create report note: %w", err)
	}
	if _, err := f.WriteString(rendered); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write report markdown: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write report markdown: %w", err)
	}
	return path, nil
}

// shortID is the first eight characters of the report id, enough to keep
// reports generated within the same second apart.
func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return slug.Make(id)
}
