package dto

type PluginInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Enabled      bool     `json:"enabled"`
	Binary       string   `json:"binary"`
	Capabilities []string `json:"capabilities"`
}

type DoctorResult struct {
	Name            string `json:"name"`
	ChecksumValid   bool   `json:"checksum_valid"`
	BinaryReachable bool   `json:"binary_reachable"`
	LifecycleOK     bool   `json:"lifecycle_ok"`
	Error           string `json:"error,omitempty"`
}

type InsightsInput struct {
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

type InsightsOutput struct {
	Insights []string
	// Skipped names plugins that failed and contributed nothing.
	Skipped []string
}
