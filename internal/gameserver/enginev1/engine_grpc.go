package enginev1

//go:generate mockgen -destination=mock/mock_engine.go -package=mockenginev1 github.com/cory-johannsen/initiative/internal/gameserver/enginev1 EngineClient

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "initiative.engine.v1.Engine"

const (
	Engine_NewGame_FullMethodName       = "/initiative.engine.v1.Engine/NewGame"
	Engine_GetGame_FullMethodName       = "/initiative.engine.v1.Engine/GetGame"
	Engine_NextTurn_FullMethodName      = "/initiative.engine.v1.Engine/NextTurn"
	Engine_Undo_FullMethodName          = "/initiative.engine.v1.Engine/Undo"
	Engine_Redo_FullMethodName          = "/initiative.engine.v1.Engine/Redo"
	Engine_Damage_FullMethodName        = "/initiative.engine.v1.Engine/Damage"
	Engine_Heal_FullMethodName          = "/initiative.engine.v1.Engine/Heal"
	Engine_SetAction_FullMethodName     = "/initiative.engine.v1.Engine/SetAction"
	Engine_AddConditions_FullMethodName = "/initiative.engine.v1.Engine/AddConditions"
	Engine_Roll_FullMethodName          = "/initiative.engine.v1.Engine/Roll"
)

// EngineClient is the client API for the Engine service.
type EngineClient interface {
	NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*GameSnapshot, error)
	NextTurn(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Undo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Redo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Damage(ctx context.Context, in *DamageRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Heal(ctx context.Context, in *HealRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	SetAction(ctx context.Context, in *SetActionRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	AddConditions(ctx context.Context, in *AddConditionsRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error)
}

type engineClient struct {
	cc grpc.ClientConnInterface
}

// NewEngineClient returns an EngineClient over cc. Every call is sent with the
// JSON content subtype.
func NewEngineClient(cc grpc.ClientConnInterface) EngineClient {
	return &engineClient{cc}
}

func call[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineClient) NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[NewGameRequest, emptypb.Empty](ctx, c.cc, Engine_NewGame_FullMethodName, in, opts)
}

func (c *engineClient) GetGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*GameSnapshot, error) {
	return call[emptypb.Empty, GameSnapshot](ctx, c.cc, Engine_GetGame_FullMethodName, in, opts)
}

func (c *engineClient) NextTurn(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[emptypb.Empty, emptypb.Empty](ctx, c.cc, Engine_NextTurn_FullMethodName, in, opts)
}

func (c *engineClient) Undo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[emptypb.Empty, emptypb.Empty](ctx, c.cc, Engine_Undo_FullMethodName, in, opts)
}

func (c *engineClient) Redo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[emptypb.Empty, emptypb.Empty](ctx, c.cc, Engine_Redo_FullMethodName, in, opts)
}

func (c *engineClient) Damage(ctx context.Context, in *DamageRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[DamageRequest, emptypb.Empty](ctx, c.cc, Engine_Damage_FullMethodName, in, opts)
}

func (c *engineClient) Heal(ctx context.Context, in *HealRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[HealRequest, emptypb.Empty](ctx, c.cc, Engine_Heal_FullMethodName, in, opts)
}

func (c *engineClient) SetAction(ctx context.Context, in *SetActionRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[SetActionRequest, emptypb.Empty](ctx, c.cc, Engine_SetAction_FullMethodName, in, opts)
}

func (c *engineClient) AddConditions(ctx context.Context, in *AddConditionsRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return call[AddConditionsRequest, emptypb.Empty](ctx, c.cc, Engine_AddConditions_FullMethodName, in, opts)
}

func (c *engineClient) Roll(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	return call[RollRequest, RollResponse](ctx, c.cc, Engine_Roll_FullMethodName, in, opts)
}

// EngineServer is the server API for the Engine service.
type EngineServer interface {
	NewGame(context.Context, *NewGameRequest) (*emptypb.Empty, error)
	GetGame(context.Context, *emptypb.Empty) (*GameSnapshot, error)
	NextTurn(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Undo(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Redo(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Damage(context.Context, *DamageRequest) (*emptypb.Empty, error)
	Heal(context.Context, *HealRequest) (*emptypb.Empty, error)
	SetAction(context.Context, *SetActionRequest) (*emptypb.Empty, error)
	AddConditions(context.Context, *AddConditionsRequest) (*emptypb.Empty, error)
	Roll(context.Context, *RollRequest) (*RollResponse, error)
}

// UnimplementedEngineServer can be embedded to have forward compatible
// implementations.
type UnimplementedEngineServer struct{}

func (UnimplementedEngineServer) NewGame(context.Context, *NewGameRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method NewGame not implemented")
}
func (UnimplementedEngineServer) GetGame(context.Context, *emptypb.Empty) (*GameSnapshot, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGame not implemented")
}
func (UnimplementedEngineServer) NextTurn(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method NextTurn not implemented")
}
func (UnimplementedEngineServer) Undo(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Undo not implemented")
}
func (UnimplementedEngineServer) Redo(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Redo not implemented")
}
func (UnimplementedEngineServer) Damage(context.Context, *DamageRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Damage not implemented")
}
func (UnimplementedEngineServer) Heal(context.Context, *HealRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Heal not implemented")
}
func (UnimplementedEngineServer) SetAction(context.Context, *SetActionRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SetAction not implemented")
}
func (UnimplementedEngineServer) AddConditions(context.Context, *AddConditionsRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method AddConditions not implemented")
}
func (UnimplementedEngineServer) Roll(context.Context, *RollRequest) (*RollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Roll not implemented")
}

// RegisterEngineServer registers srv with s.
func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&Engine_ServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, fn func(EngineServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(EngineServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(EngineServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Engine_ServiceDesc is the grpc.ServiceDesc for the Engine service.
var Engine_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NewGame", Handler: unaryHandler(Engine_NewGame_FullMethodName, EngineServer.NewGame)},
		{MethodName: "GetGame", Handler: unaryHandler(Engine_GetGame_FullMethodName, EngineServer.GetGame)},
		{MethodName: "NextTurn", Handler: unaryHandler(Engine_NextTurn_FullMethodName, EngineServer.NextTurn)},
		{MethodName: "Undo", Handler: unaryHandler(Engine_Undo_FullMethodName, EngineServer.Undo)},
		{MethodName: "Redo", Handler: unaryHandler(Engine_Redo_FullMethodName, EngineServer.Redo)},
		{MethodName: "Damage", Handler: unaryHandler(Engine_Damage_FullMethodName, EngineServer.Damage)},
		{MethodName: "Heal", Handler: unaryHandler(Engine_Heal_FullMethodName, EngineServer.Heal)},
		{MethodName: "SetAction", Handler: unaryHandler(Engine_SetAction_FullMethodName, EngineServer.SetAction)},
		{MethodName: "AddConditions", Handler: unaryHandler(Engine_AddConditions_FullMethodName, EngineServer.AddConditions)},
		{MethodName: "Roll", Handler: unaryHandler(Engine_Roll_FullMethodName, EngineServer.Roll)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "initiative/engine/v1/engine.proto",
}
