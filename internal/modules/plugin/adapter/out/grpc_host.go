package out

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "fitx/internal/modules/plugin/adapter/out/rpc"
	"fitx/internal/modules/plugin/domain"
	pluginout "fitx/internal/modules/plugin/port/out"
	"fitx/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost starts one plugin process per call and kills it afterwards.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) pluginout.Host {
	return &GRPCHost{logger: logging.OrDiscard(logger)}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Insights(ctx context.Context, manifest domain.Manifest, request domain.InsightRequest) ([]string, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Insights(callCtx, &pluginrpc.InsightsRequest{
		UserID:              request.UserID,
		Period:              request.Period,
		WindowDays:          int32(request.WindowDays),
		WorkoutsCompleted:   int32(request.WorkoutsCompleted),
		TargetWorkouts:      int32(request.TargetWorkouts),
		TotalActiveMinutes:  int32(request.TotalActiveMinutes),
		TotalCaloriesBurned: int32(request.TotalCaloriesBurned),
		CaloriesConsumed:    int32(request.CaloriesConsumed),
		ConsistencyPercent:  int32(request.ConsistencyPercent),
		Rating:              request.Rating,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("insights: %w", err)
	}
	return response.Insights, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (pluginrpc.InsightPluginClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.InsightPluginClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
