package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "fitx"
	serviceName       = "fitx.plugin.v1.InsightPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodInsights    = "/" + serviceName + "/Insights"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FITX_PLUGIN",
	MagicCookieValue: "fitx-insights",
}

// jsonCodec lets plain structs travel over gRPC without generated protobufs.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type InsightsRequest struct {
	UserID              string `json:"user_id"`
	Period              string `json:"period"`
	WindowDays          int32  `json:"window_days"`
	WorkoutsCompleted   int32  `json:"workouts_completed"`
	TargetWorkouts      int32  `json:"target_workouts"`
	TotalActiveMinutes  int32  `json:"total_active_minutes"`
	TotalCaloriesBurned int32  `json:"total_calories_burned"`
	CaloriesConsumed    int32  `json:"calories_consumed"`
	ConsistencyPercent  int32  `json:"consistency_percent"`
	Rating              string `json:"rating"`
}

type InsightsResponse struct {
	Insights []string `json:"insights"`
}

type InsightPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Insights(ctx context.Context, in *InsightsRequest) (*InsightsResponse, error)
}

type InsightPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Insights(ctx context.Context, in *InsightsRequest) (*InsightsResponse, error)
}

type insightPluginClient struct {
	conn *grpc.ClientConn
}

func NewInsightPluginClient(conn *grpc.ClientConn) InsightPluginClient {
	return &insightPluginClient{conn: conn}
}

func (c *insightPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *insightPluginClient) Insights(ctx context.Context, in *InsightsRequest) (*InsightsResponse, error) {
	out := &InsightsResponse{}
	if err := c.conn.Invoke(ctx, methodInsights, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func unary[Req any](method string, call func(context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterInsightPluginServer(server grpc.ServiceRegistrar, impl InsightPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*InsightPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: unary(methodGetMetadata, func(ctx context.Context, in *Empty) (any, error) {
					return impl.GetMetadata(ctx, in)
				}),
			},
			{
				MethodName: "Insights",
				Handler: unary(methodInsights, func(ctx context.Context, in *InsightsRequest) (any, error) {
					return impl.Insights(ctx, in)
				}),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "fitx/plugin/v1/insights",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl InsightPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterInsightPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewInsightPluginClient(conn), nil
}

func PluginMap(impl InsightPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
