// Package qrbillpb is the Go binding of qrbill.proto. The service only uses
// well-known types, so the descriptor is maintained by hand instead of by
// protoc.
package qrbillpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "qrbill.v1.BillRenderer"

	RenderSVGFullMethodName     = "/" + ServiceName + "/RenderSVG"
	FormatPayloadFullMethodName = "/" + ServiceName + "/FormatPayload"
)

type BillRendererClient interface {
	RenderSVG(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	FormatPayload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type billRendererClient struct {
	cc grpc.ClientConnInterface
}

func NewBillRendererClient(cc grpc.ClientConnInterface) BillRendererClient {
	return &billRendererClient{cc: cc}
}

func (c *billRendererClient) RenderSVG(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, RenderSVGFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *billRendererClient) FormatPayload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, FormatPayloadFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type BillRendererServer interface {
	RenderSVG(ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error)
	FormatPayload(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error)
}

// UnimplementedBillRendererServer answers every method with Unimplemented.
type UnimplementedBillRendererServer struct{}

func (UnimplementedBillRendererServer) RenderSVG(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RenderSVG not implemented")
}

func (UnimplementedBillRendererServer) FormatPayload(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method FormatPayload not implemented")
}

func RegisterBillRendererServer(s grpc.ServiceRegistrar, srv BillRendererServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BillRendererServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RenderSVG", Handler: renderSVGHandler},
		{MethodName: "FormatPayload", Handler: formatPayloadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "qrbill.proto",
}

func renderSVGHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BillRendererServer).RenderSVG(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RenderSVGFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BillRendererServer).RenderSVG(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func formatPayloadHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BillRendererServer).FormatPayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FormatPayloadFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BillRendererServer).FormatPayload(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
