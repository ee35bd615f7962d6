package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-plugin"

	pluginrpc "fitx/internal/modules/plugin/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"insights"},
	}, nil
}

// Insights derives a pacing hint and an energy-balance note from the summary.
func (s *server) Insights(_ context.Context, in *pluginrpc.InsightsRequest) (*pluginrpc.InsightsResponse, error) {
	lines := []string{}
	if gap := in.TargetWorkouts - in.WorkoutsCompleted; gap > 0 {
		lines = append(lines, fmt.Sprintf("Pace check: %d more workouts would hit this period's target.", gap))
	} else {
		lines = append(lines, "Pace check: target reached for this period.")
	}
	if in.CaloriesConsumed > 0 && in.TotalCaloriesBurned > 0 {
		lines = append(lines, fmt.Sprintf("Energy balance: %d kcal in, %d kcal burned through exercise.", in.CaloriesConsumed, in.TotalCaloriesBurned))
	}
	return &pluginrpc.InsightsResponse{Insights: lines}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
