package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/auth"
)

func authedClient(t *testing.T, svc *auth.Service, token string) *Client {
	t.Helper()
	opts := ServerOptions{
		Interceptors: []grpclib.UnaryServerInterceptor{auth.UnaryServerInterceptor(svc, AuthPolicy())},
	}
	if token == "" {
		return startServer(t, opts)
	}
	return startServer(t, opts, grpclib.WithPerRPCCredentials(auth.TokenCredentials{Token: token}))
}

func TestAuthPolicy(t *testing.T) {
	svc, err := auth.NewService(auth.Config{Secret: "policy-test-secret", Issuer: "aura-credit"})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		client := authedClient(t, svc, "")
		_, err := client.GetDashboard(ctx, "strong-1")
		requireCode(t, err, codes.Unauthenticated)
	})

	t.Run("merchant limited to own customer", func(t *testing.T) {
		token, err := svc.Issue("merchant-user", []string{auth.RoleMerchant}, "strong-1")
		require.NoError(t, err)
		client := authedClient(t, svc, token)

		score, err := client.CalculateScore(ctx, "strong-1")
		require.NoError(t, err)
		assert.Equal(t, 850, score.Score)

		_, err = client.GetDashboard(ctx, "strong-2")
		requireCode(t, err, codes.PermissionDenied)

		_, err = client.ScanPaymentsDue(ctx, 24)
		requireCode(t, err, codes.PermissionDenied)

		_, err = client.RecordPayment(ctx, &RecordPaymentRequest{ObligationID: "ob-1", Amount: "1"})
		requireCode(t, err, codes.PermissionDenied)
	})

	t.Run("operator reaches staff methods", func(t *testing.T) {
		token, err := svc.Issue("ops", []string{auth.RoleOperator}, "")
		require.NoError(t, err)
		client := authedClient(t, svc, token)

		_, err = client.GetObligation(ctx, "missing")
		requireCode(t, err, codes.NotFound)

		_, err = client.ScanPaymentsDue(ctx, 24)
		requireCode(t, err, codes.PermissionDenied)
	})

	t.Run("admin scans", func(t *testing.T) {
		token, err := svc.Issue("root", []string{auth.RoleAdmin}, "")
		require.NoError(t, err)
		client := authedClient(t, svc, token)

		scan, err := client.ScanPaymentsDue(ctx, 24)
		require.NoError(t, err)
		assert.Zero(t, scan.Scanned)
	})
}
