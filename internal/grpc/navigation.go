package grpcserver

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"meetingsManagement/internal/router"
)

const (
	navigationServiceName = "meetings.navigation.v1.NavigationService"
	checkMethod           = "/" + navigationServiceName + "/Check"
)

// NavigationServiceServer answers guard decisions for native clients.
// Messages are google.protobuf.Struct values:
//
//	request:  {path: string, from?: string}
//	response: {outcome: "proceed"|"redirect", redirect: string, route: string, params: {..}}
type NavigationServiceServer interface {
	Check(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var navigationServiceDesc = grpc.ServiceDesc{
	ServiceName: navigationServiceName,
	HandlerType: (*NavigationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: checkHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "meetings/navigation/v1/navigation.proto",
}

// RegisterNavigationServiceServer registers srv on s.
func RegisterNavigationServiceServer(s grpc.ServiceRegistrar, srv NavigationServiceServer) {
	s.RegisterService(&navigationServiceDesc, srv)
}

func checkHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NavigationServiceServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NavigationServiceServer).Check(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// NavigationServer implements NavigationServiceServer over a Router.
type NavigationServer struct {
	Router *router.Router
}

// Check runs the navigation guard for the requested path.
func (s *NavigationServer) Check(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	path := strings.TrimSpace(req.GetFields()["path"].GetStringValue())
	if path == "" || !strings.HasPrefix(path, "/") {
		return nil, status.Error(codes.InvalidArgument, "path must be an absolute application path")
	}
	var from *router.Location
	if f := strings.TrimSpace(req.GetFields()["from"].GetStringValue()); f != "" {
		from, _ = s.Router.Resolve(f)
	}

	d, loc, err := s.Router.Navigate(ctx, path, from)
	if err != nil {
		if errors.Is(err, router.ErrLookup) {
			return nil, status.Errorf(codes.Unavailable, "navigation check: %v", err)
		}
		return nil, status.Errorf(codes.Internal, "navigation check: %v", err)
	}
	if loc == nil && d.Outcome != router.Redirect {
		return nil, status.Errorf(codes.NotFound, "no route for %s", path)
	}

	params := map[string]any{}
	if loc != nil {
		for k, v := range loc.Params {
			params[k] = v
		}
	}
	resp, err := structpb.NewStruct(map[string]any{
		"outcome":  d.Outcome.String(),
		"redirect": d.RedirectTo,
		"route":    loc.Name(),
		"params":   params,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return resp, nil
}

// NavigationClient calls NavigationService over a client connection.
type NavigationClient struct {
	cc grpc.ClientConnInterface
}

// NewNavigationClient wraps cc.
func NewNavigationClient(cc grpc.ClientConnInterface) *NavigationClient {
	return &NavigationClient{cc: cc}
}

// Check asks the server whether navigating from -> path may proceed.
func (c *NavigationClient) Check(ctx context.Context, path, from string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	fields := map[string]any{"path": path}
	if from != "" {
		fields["from"] = from
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, checkMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
