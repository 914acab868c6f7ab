// Package v1alpha1 handles the shard loadout grpc service interface.
//
// Requests and responses are google.protobuf.Struct messages with snake_case
// fields; items travel in their text form (w10, a4, none).
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified grpc service name
const ServiceName = "rpgshards.api.v1alpha1.ShardService"

// Method names
const (
	MethodGetLoadout     = "GetLoadout"
	MethodResizeSlots    = "ResizeSlots"
	MethodSetSlotLock    = "SetSlotLock"
	MethodEquipShard     = "EquipShard"
	MethodUnequipShard   = "UnequipShard"
	MethodRemoveShard    = "RemoveShard"
	MethodSetOrbImage    = "SetOrbImage"
	MethodPreviewEquip   = "PreviewEquip"
	MethodLevelUp        = "LevelUp"
	MethodHasShard       = "HasShard"
	MethodPartyHasShard  = "PartyHasShard"
	MethodListShardItems = "ListShardItems"
)

// ShardServiceServer is the server API for ShardService
type ShardServiceServer interface {
	GetLoadout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ResizeSlots(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetSlotLock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EquipShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UnequipShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RemoveShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SetOrbImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PreviewEquip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	LevelUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	HasShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PartyHasShard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListShardItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ShardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ShardServiceDesc is the grpc.ServiceDesc for ShardService
var ShardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetLoadout, ShardServiceServer.GetLoadout),
		unary(MethodResizeSlots, ShardServiceServer.ResizeSlots),
		unary(MethodSetSlotLock, ShardServiceServer.SetSlotLock),
		unary(MethodEquipShard, ShardServiceServer.EquipShard),
		unary(MethodUnequipShard, ShardServiceServer.UnequipShard),
		unary(MethodRemoveShard, ShardServiceServer.RemoveShard),
		unary(MethodSetOrbImage, ShardServiceServer.SetOrbImage),
		unary(MethodPreviewEquip, ShardServiceServer.PreviewEquip),
		unary(MethodLevelUp, ShardServiceServer.LevelUp),
		unary(MethodHasShard, ShardServiceServer.HasShard),
		unary(MethodPartyHasShard, ShardServiceServer.PartyHasShard),
		unary(MethodListShardItems, ShardServiceServer.ListShardItems),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgshards/api/v1alpha1/shard_service.proto",
}

// RegisterShardServiceServer registers srv on s
func RegisterShardServiceServer(s grpc.ServiceRegistrar, srv ShardServiceServer) {
	s.RegisterService(&ShardServiceDesc, srv)
}

// FullMethod returns the grpc path of a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MethodNames lists every ShardService method
func MethodNames() []string {
	names := make([]string, 0, len(ShardServiceDesc.Methods))
	for _, m := range ShardServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	return names
}

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ShardServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ShardServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ShardServiceClient calls ShardService methods
type ShardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewShardServiceClient creates a client over a connection
func NewShardServiceClient(cc grpc.ClientConnInterface) *ShardServiceClient {
	return &ShardServiceClient{cc: cc}
}

// Call invokes method with the request payload
func (c *ShardServiceClient) Call(
	ctx context.Context,
	method string,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
