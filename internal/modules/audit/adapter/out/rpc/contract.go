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
	PluginMapKey      = "auditor"
	serviceName       = "ghostnote.auditor.v1.Auditor"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodResolve     = "/" + serviceName + "/Resolve"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "GHOSTNOTE_AUDITOR",
	MagicCookieValue: "ghostnote",
}

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
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ResolveRequest struct {
	WagerID        int64  `json:"wager_id"`
	Prediction     string `json:"prediction"`
	Days           int32  `json:"days"`
	SealedAtUnixMS int64  `json:"sealed_at_unix_ms"`
	FollowUp       string `json:"follow_up"`
}

type ResolveResponse struct {
	AccuracyScore int32  `json:"accuracy_score"`
	BlindSpot     string `json:"blind_spot"`
	GrowthInsight string `json:"growth_insight"`
}

type AuditorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Resolve(ctx context.Context, in *ResolveRequest) (*ResolveResponse, error)
}

type AuditorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Resolve(ctx context.Context, in *ResolveRequest) (*ResolveResponse, error)
}

type auditorClient struct {
	conn *grpc.ClientConn
}

func NewAuditorClient(conn *grpc.ClientConn) AuditorClient {
	return &auditorClient{conn: conn}
}

func (c *auditorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *auditorClient) Resolve(ctx context.Context, in *ResolveRequest) (*ResolveResponse, error) {
	out := &ResolveResponse{}
	if err := c.conn.Invoke(ctx, methodResolve, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterAuditorServer(server grpc.ServiceRegistrar, impl AuditorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AuditorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Resolve",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ResolveRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Resolve(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodResolve}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ResolveRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Resolve(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "auditor-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AuditorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAuditorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAuditorClient(conn), nil
}

func PluginMap(impl AuditorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
