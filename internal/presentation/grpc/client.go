package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/tlsutil"
)

// Client calls CreditService over the JSON codec.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to target. A nil tlsOpts dials in plaintext. Extra dial
// options are appended, which tests use to inject a bufconn dialer.
func Dial(target string, tlsOpts *tlsutil.ClientOptions, extra ...grpc.DialOption) (*Client, error) {
	opts := []grpc.DialOption{
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(ContentSubtype)),
	}
	if tlsOpts != nil {
		creds, err := tlsutil.ClientTLSConfig(*tlsOpts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(creds))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	conn, err := grpc.NewClient(target, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp)
}

func (c *Client) CalculateScore(ctx context.Context, customerID string) (dto.CreditScoreResponse, error) {
	var resp dto.CreditScoreResponse
	err := c.invoke(ctx, "CalculateScore", &CustomerRequest{CustomerID: customerID}, &resp)
	return resp, err
}

func (c *Client) GetLatestScore(ctx context.Context, customerID string) (dto.CreditScoreResponse, error) {
	var resp dto.CreditScoreResponse
	err := c.invoke(ctx, "GetLatestScore", &CustomerRequest{CustomerID: customerID}, &resp)
	return resp, err
}

func (c *Client) ListScoreHistory(ctx context.Context, req *ListScoreHistoryRequest) (dto.ScoreHistoryResponse, error) {
	var resp dto.ScoreHistoryResponse
	err := c.invoke(ctx, "ListScoreHistory", req, &resp)
	return resp, err
}

func (c *Client) OriginateNetTerms(ctx context.Context, req *OriginateNetTermsRequest) (dto.ObligationResponse, error) {
	var resp dto.ObligationResponse
	err := c.invoke(ctx, "OriginateNetTerms", req, &resp)
	return resp, err
}

func (c *Client) OriginateWorkingCapital(ctx context.Context, req *OriginateWorkingCapitalRequest) (dto.ObligationResponse, error) {
	var resp dto.ObligationResponse
	err := c.invoke(ctx, "OriginateWorkingCapital", req, &resp)
	return resp, err
}

func (c *Client) OriginateRevenueBased(ctx context.Context, req *OriginateRevenueBasedRequest) (dto.ObligationResponse, error) {
	var resp dto.ObligationResponse
	err := c.invoke(ctx, "OriginateRevenueBased", req, &resp)
	return resp, err
}

func (c *Client) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (dto.RecordPaymentResponse, error) {
	var resp dto.RecordPaymentResponse
	err := c.invoke(ctx, "RecordPayment", req, &resp)
	return resp, err
}

func (c *Client) PaySupplier(ctx context.Context, obligationID string) (dto.ObligationResponse, error) {
	var resp dto.ObligationResponse
	err := c.invoke(ctx, "PaySupplier", &ObligationRequest{ObligationID: obligationID}, &resp)
	return resp, err
}

func (c *Client) GetObligation(ctx context.Context, obligationID string) (dto.ObligationResponse, error) {
	var resp dto.ObligationResponse
	err := c.invoke(ctx, "GetObligation", &ObligationRequest{ObligationID: obligationID}, &resp)
	return resp, err
}

func (c *Client) ListObligations(ctx context.Context, customerID string) (dto.ObligationListResponse, error) {
	var resp dto.ObligationListResponse
	err := c.invoke(ctx, "ListObligations", &CustomerRequest{CustomerID: customerID}, &resp)
	return resp, err
}

func (c *Client) GetDashboard(ctx context.Context, customerID string) (dto.DashboardResponse, error) {
	var resp dto.DashboardResponse
	err := c.invoke(ctx, "GetDashboard", &CustomerRequest{CustomerID: customerID}, &resp)
	return resp, err
}

func (c *Client) ScanPaymentsDue(ctx context.Context, windowHours int32) (dto.ScanPaymentsDueResponse, error) {
	var resp dto.ScanPaymentsDueResponse
	err := c.invoke(ctx, "ScanPaymentsDue", &ScanPaymentsDueRequest{WindowHours: windowHours}, &resp)
	return resp, err
}
