package service

import (
	"context"
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/guard"
)

type ordersStub struct {
	postCalls   int
	lastPost    *pb.PostOrderRequest
	cancelCalls int
	listResp    *pb.GetOrdersResponse
}

func (s *ordersStub) PostOrder(_ context.Context, in *pb.PostOrderRequest, _ ...grpc.CallOption) (*pb.PostOrderResponse, error) {
	s.postCalls++
	s.lastPost = in
	return &pb.PostOrderResponse{
		OrderId:               "order-1",
		ExecutionReportStatus: pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_NEW,
		Direction:             in.Direction,
	}, nil
}

func (s *ordersStub) CancelOrder(_ context.Context, _ *pb.CancelOrderRequest, _ ...grpc.CallOption) (*pb.CancelOrderResponse, error) {
	s.cancelCalls++
	return &pb.CancelOrderResponse{Time: timestamppb.Now()}, nil
}

func (s *ordersStub) GetOrders(_ context.Context, _ *pb.GetOrdersRequest, _ ...grpc.CallOption) (*pb.GetOrdersResponse, error) {
	if s.listResp != nil {
		return s.listResp, nil
	}
	return &pb.GetOrdersResponse{}, nil
}

func TestCreateOrder_LimitRequiresPrice(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		InstrumentUID: "uid-1",
		Quantity:      1,
		Direction:     "ORDER_DIRECTION_BUY",
		OrderType:     "ORDER_TYPE_LIMIT",
	})

	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "price")
	assert.Zero(t, stub.postCalls)
}

func TestCreateOrder_MarketIgnoresSuppliedPrice(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))

	conf, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		InstrumentUID: "uid-1",
		Quantity:      1,
		Direction:     "ORDER_DIRECTION_SELL",
		OrderType:     "ORDER_TYPE_MARKET",
		Price:         "100",
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", conf.OrderID)
	require.NotNil(t, stub.lastPost)
	assert.Nil(t, stub.lastPost.Price)
}

func TestCreateOrder_MarketWithoutPrice(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))
	svc.newOrderID = func() string { return "idempotency-key" }

	conf, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		InstrumentUID: "uid-1",
		Quantity:      3,
		Direction:     "ORDER_DIRECTION_BUY",
		OrderType:     "ORDER_TYPE_MARKET",
	})

	require.NoError(t, err)
	assert.Equal(t, "order-1", conf.OrderID)
	assert.Equal(t, "ORDER_DIRECTION_BUY", conf.Direction)
	require.NotNil(t, stub.lastPost)
	assert.Nil(t, stub.lastPost.Price)
	assert.Equal(t, "acc-1", stub.lastPost.AccountId)
	assert.Equal(t, "idempotency-key", stub.lastPost.OrderId)
}

func TestCreateOrder_LimitPriceLossless(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		InstrumentUID: "uid-1",
		Quantity:      1,
		Direction:     "ORDER_DIRECTION_BUY",
		OrderType:     "ORDER_TYPE_LIMIT",
		Price:         "15.475",
	})

	require.NoError(t, err)
	require.NotNil(t, stub.lastPost.Price)
	assert.Equal(t, int64(15), stub.lastPost.Price.Units)
	assert.Equal(t, int32(475_000_000), stub.lastPost.Price.Nano)
}

func TestCreateOrder_ForeignAccountBlockedBeforeUpstream(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		AccountID:     "acc-2",
		InstrumentUID: "uid-1",
		Quantity:      1,
		Direction:     "ORDER_DIRECTION_BUY",
		OrderType:     "ORDER_TYPE_MARKET",
	})

	require.True(t, domain.IsAuthorization(err))
	assert.Zero(t, stub.postCalls)
}

func TestCancelOrder_RequiresOrderID(t *testing.T) {
	stub := &ordersStub{}
	svc := NewOrders(stub, guard.New("acc-1"))

	_, err := svc.CancelOrder(context.Background(), "", "")

	require.True(t, domain.IsValidation(err))
	assert.Zero(t, stub.cancelCalls)
}

func TestGetOrders_FiltersFinishedOrders(t *testing.T) {
	stub := &ordersStub{listResp: &pb.GetOrdersResponse{Orders: []*pb.OrderState{
		{OrderId: "a", ExecutionReportStatus: pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_NEW},
		{OrderId: "b", ExecutionReportStatus: pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_FILL},
		{OrderId: "c", ExecutionReportStatus: pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_PARTIALLYFILL},
		{OrderId: "d", ExecutionReportStatus: pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_CANCELLED},
	}}}
	svc := NewOrders(stub, guard.New("acc-1"))

	orders, err := svc.GetOrders(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "a", orders[0].OrderID)
	assert.Equal(t, "c", orders[1].OrderID)
}
