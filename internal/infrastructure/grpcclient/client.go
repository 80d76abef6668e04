package grpcclient

import (
	"context"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/Xausdorf/swiss-qr-bill/api/qrbillpb"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
)

const maxTries = 4

type Client struct {
	client qrbillpb.BillRendererClient
	conn   *grpc.ClientConn
}

// NewClient connects to a BillRenderer at addr. Extra options are appended
// to the insecure, traced defaults.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: qrbillpb.NewBillRendererClient(conn),
		conn:   conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) RenderSVG(ctx context.Context, d bill.PaymentData) ([]byte, error) {
	req, err := qrbillpb.FromPaymentData(d)
	if err != nil {
		return nil, err
	}
	return retry(ctx, func() ([]byte, error) {
		resp, err := c.client.RenderSVG(ctx, req)
		return resp.GetValue(), err
	})
}

func (c *Client) FormatPayload(ctx context.Context, d bill.PaymentData) (string, error) {
	req, err := qrbillpb.FromPaymentData(d)
	if err != nil {
		return "", err
	}
	return retry(ctx, func() (string, error) {
		resp, err := c.client.FormatPayload(ctx, req)
		return resp.GetValue(), err
	})
}

// retry repeats op while the server is unavailable. Every other status is
// final.
func retry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && status.Code(err) != codes.Unavailable {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxTries))
}
