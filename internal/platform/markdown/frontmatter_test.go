package markdown_test

import (
	"strings"
	"testing"

	"fitx/internal/platform/markdown"
)

type noteMeta struct {
	ID         string `yaml:"id"`
	WindowDays int    `yaml:"window_days"`
}

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Render(noteMeta{ID: "r-1", WindowDays: 7}, "# Report\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nid: r-1\nwindow_days: 7\n---\n") {
		t.Fatalf("unexpected frontmatter layout: %q", rendered)
	}
	meta := noteMeta{}
	body, err := markdown.Split(rendered, &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta.ID != "r-1" || meta.WindowDays != 7 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if strings.TrimSpace(body) != "# Report" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitWithoutFrontmatterAndUnclosed(t *testing.T) {
	t.Parallel()
	meta := noteMeta{}
	body, err := markdown.Split("plain body", &meta)
	if err != nil || body != "plain body" {
		t.Fatalf("plain content should pass through, got %q %v", body, err)
	}
	if _, err := markdown.Split("---\nid: x\n", &meta); err == nil {
		t.Fatalf("unclosed frontmatter should fail")
	}
}
