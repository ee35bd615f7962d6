package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const CapabilityInsights Capability = "insights"

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// MaxInsightsPerPlugin caps what a single plugin may contribute to a summary.
const MaxInsightsPerPlugin = 5

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityInsights:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// InsightRequest is the summary snapshot handed to plugins.
type InsightRequest struct {
	UserID              string
	Period              string
	WindowDays          int
	WorkoutsCompleted   int
	TargetWorkouts      int
	TotalActiveMinutes  int
	TotalCaloriesBurned int
	CaloriesConsumed    int
	ConsistencyPercent  int
	Rating              string
}

func (r InsightRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.WindowDays <= 0 {
		return fmt.Errorf("window days must be positive")
	}
	return nil
}
