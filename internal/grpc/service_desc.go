package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	methodGenerateSample = "/" + ServiceName + "/GenerateSample"
	methodStartDataset   = "/" + ServiceName + "/StartDataset"
	methodGetDataset     = "/" + ServiceName + "/GetDataset"
)

// DatasetServiceDesc описание сервиса для grpc.Server
var DatasetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DatasetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateSample", Handler: unaryHandler(methodGenerateSample, DatasetServiceServer.GenerateSample)},
		{MethodName: "StartDataset", Handler: unaryHandler(methodStartDataset, DatasetServiceServer.StartDataset)},
		{MethodName: "GetDataset", Handler: unaryHandler(methodGetDataset, DatasetServiceServer.GetDataset)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fraudsim/v1/dataset.proto",
}

func RegisterDatasetServiceServer(s grpc.ServiceRegistrar, srv DatasetServiceServer) {
	s.RegisterService(&DatasetServiceDesc, srv)
}

type unaryMethod func(DatasetServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DatasetServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DatasetServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
