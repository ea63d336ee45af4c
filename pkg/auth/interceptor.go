package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey struct{}

// ContextWithClaims returns a new context with the given Claims attached.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext extracts Claims from the context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// CustomerScoped is implemented by requests that address one customer's
// data. Tokens carrying a customer_id may only reach their own customer.
type CustomerScoped interface {
	ScopeCustomerID() string
}

// Policy maps full gRPC method names to the roles allowed to call them.
// Methods absent from the map are open to any authenticated caller;
// methods listed in Public skip authentication entirely.
type Policy struct {
	Roles  map[string][]string
	Public []string
}

// UnaryServerInterceptor authenticates bearer tokens and enforces policy.
func UnaryServerInterceptor(svc *Service, policy Policy) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(policy.Public))
	for _, m := range policy.Public {
		public[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}
		claims, err := svc.Validate(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		if roles, ok := policy.Roles[info.FullMethod]; ok && !claims.HasAnyRole(roles...) {
			return nil, status.Errorf(codes.PermissionDenied, "%s requires one of %v", info.FullMethod, roles)
		}
		if claims.CustomerID != "" {
			scoped, ok := req.(CustomerScoped)
			if !ok || scoped.ScopeCustomerID() != claims.CustomerID {
				return nil, status.Error(codes.PermissionDenied, "token is not valid for this customer")
			}
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

// TokenCredentials attaches a bearer token to every call.
type TokenCredentials struct {
	Token string
	// Secure refuses to send the token over plaintext connections.
	Secure bool
}

func (t TokenCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + t.Token}, nil
}

func (t TokenCredentials) RequireTransportSecurity() bool {
	return t.Secure
}
