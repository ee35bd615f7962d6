package in

import (
	"context"

	"fitx/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	// Doctor checks every manifest, or only name when it is non-empty.
	Doctor(ctx context.Context, name string) ([]dto.DoctorResult, error)
	CollectInsights(ctx context.Context, input dto.InsightsInput) (dto.InsightsOutput, error)
}
