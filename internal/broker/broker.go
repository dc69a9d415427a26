// Package broker owns the connection to the T-Invest API and hands out the
// vendor-generated gRPC service clients. The wire protocol, message types and
// per-method stubs all come from the invest-api-go-sdk proto package; nothing
// here reimplements them.
package broker

import (
	"context"
	"crypto/tls"
	"errors"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
)

const (
	ProductionEndpoint = "invest-public-api.tinkoff.ru:443"
	SandboxEndpoint    = "sandbox-invest-public-api.tinkoff.ru:443"
)

type Clients struct {
	MarketData  pb.MarketDataServiceClient
	Orders      pb.OrdersServiceClient
	StopOrders  pb.StopOrdersServiceClient
	Operations  pb.OperationsServiceClient
	Instruments pb.InstrumentsServiceClient

	conn *grpc.ClientConn
}

// Dial connects to the given endpoint and builds the service clients. Every
// call carries the Bearer token and the x-app-name label in its metadata.
func Dial(endpoint, token, appName string) (*Clients, error) {
	if endpoint == "" {
		return nil, errors.New("endpoint must be defined")
	}
	if token == "" {
		return nil, errors.New("api token must be defined")
	}
	if appName == "" {
		return nil, errors.New("application name must be defined")
	}

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})),
		grpc.WithUserAgent(appName),
		grpc.WithUnaryInterceptor(authInterceptor(token, appName)),
	)
	if err != nil {
		return nil, err
	}
	return NewClients(conn), nil
}

// NewClients builds the service clients over an existing connection.
func NewClients(cc *grpc.ClientConn) *Clients {
	return &Clients{
		MarketData:  pb.NewMarketDataServiceClient(cc),
		Orders:      pb.NewOrdersServiceClient(cc),
		StopOrders:  pb.NewStopOrdersServiceClient(cc),
		Operations:  pb.NewOperationsServiceClient(cc),
		Instruments: pb.NewInstrumentsServiceClient(cc),
		conn:        cc,
	}
}

func (c *Clients) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func authInterceptor(token, appName string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx,
			"authorization", "Bearer "+token,
			"x-app-name", appName)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
