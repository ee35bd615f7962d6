package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"fitx/internal/modules/plugin/domain"
	"fitx/internal/modules/plugin/dto"
	pluginout "fitx/internal/modules/plugin/port/out"
	apperrors "fitx/internal/platform/errors"
	"fitx/internal/platform/logging"
)

type PluginService struct {
	store  pluginout.ManifestStore
	host   pluginout.Host
	logger hclog.Logger
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, logger hclog.Logger) *PluginService {
	return &PluginService{store: store, host: host, logger: logging.OrDiscard(logger)}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context, name string) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if name != "" {
		manifests = filterByName(manifests, name)
		if len(manifests) == 0 {
			return nil, fmt.Errorf("%w: plugin %q", apperrors.ErrNotFound, name)
		}
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		if !result.ChecksumValid {
			result.Error = "checksum mismatch"
			results = append(results, result)
			continue
		}
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// CollectInsights asks every runnable insights plugin for extra lines. A plugin
// that fails for any reason is logged and skipped.
func (s *PluginService) CollectInsights(ctx context.Context, input dto.InsightsInput) (dto.InsightsOutput, error) {
	request := domain.InsightRequest{
		UserID:              input.UserID,
		Period:              input.Period,
		WindowDays:          input.WindowDays,
		WorkoutsCompleted:   input.WorkoutsCompleted,
		TargetWorkouts:      input.TargetWorkouts,
		TotalActiveMinutes:  input.TotalActiveMinutes,
		TotalCaloriesBurned: input.TotalCaloriesBurned,
		CaloriesConsumed:    input.CaloriesConsumed,
		ConsistencyPercent:  input.ConsistencyPercent,
		Rating:              input.Rating,
	}
	if err := request.Validate(); err != nil {
		return dto.InsightsOutput{}, err
	}
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return dto.InsightsOutput{}, err
	}
	out := dto.InsightsOutput{Insights: []string{}}
	for _, m := range manifests {
		if !m.Enabled || !m.HasCapability(domain.CapabilityInsights) {
			continue
		}
		lines, err := s.insightsFrom(ctx, m, request)
		if err != nil {
			s.logger.Warn("insight plugin skipped", "plugin", m.Name, "error", err)
			out.Skipped = append(out.Skipped, m.Name)
			continue
		}
		out.Insights = append(out.Insights, lines...)
	}
	return out, nil
}

func (s *PluginService) insightsFrom(ctx context.Context, m domain.Manifest, request domain.InsightRequest) ([]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return nil, err
	}
	if s.host == nil {
		return nil, fmt.Errorf("plugin host is not configured")
	}
	raw, err := s.host.Insights(ctx, m, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, m.Name)
		}
		return nil, err
	}
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == domain.MaxInsightsPerPlugin {
			break
		}
	}
	return lines, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func filterByName(manifests []domain.Manifest, name string) []domain.Manifest {
	var out []domain.Manifest
	for _, m := range manifests {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
