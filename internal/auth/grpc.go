package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenFromMD extracts a Bearer token from incoming gRPC metadata.
// found is false when no authorization header is present; an error is
// returned for a header that is not a Bearer credential.
func TokenFromMD(ctx context.Context) (token string, found bool, err error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false, nil
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", false, nil
	}
	tok, ok := parseBearer(vals[0])
	if !ok {
		return "", true, status.Error(codes.Unauthenticated, "invalid authorization header")
	}
	return tok, true, nil
}

// NewUnaryTokenInterceptor returns a gRPC unary interceptor that copies a
// Bearer token from incoming metadata into the context. Calls without a token
// proceed anonymously; the session is resolved later by whoever needs it.
func NewUnaryTokenInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		tok, found, err := TokenFromMD(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			ctx = WithAccessToken(ctx, tok)
		}
		return handler(ctx, req)
	}
}
