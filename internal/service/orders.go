package service

import (
	"context"

	"github.com/google/uuid"
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/guard"
)

type ordersClient interface {
	PostOrder(ctx context.Context, in *pb.PostOrderRequest, opts ...grpc.CallOption) (*pb.PostOrderResponse, error)
	CancelOrder(ctx context.Context, in *pb.CancelOrderRequest, opts ...grpc.CallOption) (*pb.CancelOrderResponse, error)
	GetOrders(ctx context.Context, in *pb.GetOrdersRequest, opts ...grpc.CallOption) (*pb.GetOrdersResponse, error)
}

// Orders places, cancels and lists exchange orders. Each placement carries a
// fresh idempotency key, so an upstream retry storm cannot double an order.
type Orders struct {
	client     ordersClient
	gate       *guard.AccountGate
	newOrderID func() string
}

func NewOrders(client ordersClient, gate *guard.AccountGate) *Orders {
	return &Orders{client: client, gate: gate, newOrderID: uuid.NewString}
}

type CreateOrderRequest struct {
	AccountID     string `json:"account_id"`
	InstrumentUID string `json:"instrument_uid" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	Direction     string `json:"direction" validate:"required"`
	OrderType     string `json:"order_type" validate:"required"`
	Price         string `json:"price"`
}

func (s *Orders) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.OrderConfirmation, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	direction, err := domain.OrderDirectionFromToken(req.Direction)
	if err != nil {
		return nil, err
	}
	orderType, err := domain.OrderTypeFromToken(req.OrderType)
	if err != nil {
		return nil, err
	}

	// Only limit orders carry a price. Market orders execute at whatever
	// the book gives; a supplied price is ignored, not rejected.
	var price *pb.Quotation
	if domain.IsLimitOrder(orderType) {
		if req.Price == "" {
			return nil, domain.Validationf("price", "is required for %s", req.OrderType)
		}
		p, err := domain.ParsePrice("price", req.Price)
		if err != nil {
			return nil, err
		}
		price = domain.DecimalToQuotation(p)
	}

	accountID, err := s.gate.Resolve(req.AccountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.PostOrder(ctx, &pb.PostOrderRequest{
		Quantity:     req.Quantity,
		Price:        price,
		Direction:    direction,
		AccountId:    accountID,
		OrderType:    orderType,
		OrderId:      s.newOrderID(),
		InstrumentId: req.InstrumentUID,
	})
	if err != nil {
		return nil, domain.Upstream("post order", err)
	}

	return &domain.OrderConfirmation{
		OrderID:   resp.OrderId,
		Status:    resp.ExecutionReportStatus.String(),
		Direction: resp.Direction.String(),
		Message:   resp.Message,
	}, nil
}

func (s *Orders) CancelOrder(ctx context.Context, accountID, orderID string) (*domain.CancelConfirmation, error) {
	if orderID == "" {
		return nil, domain.Validationf("order_id", "is required")
	}

	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.CancelOrder(ctx, &pb.CancelOrderRequest{
		AccountId: accountID,
		OrderId:   orderID,
	})
	if err != nil {
		return nil, domain.Upstream("cancel order", err)
	}

	return &domain.CancelConfirmation{
		Success: true,
		Time:    domain.TimestampToISO(resp.Time),
	}, nil
}

// GetOrders returns only orders still working at the exchange: new and
// partially filled. Finished orders belong to the operations history.
func (s *Orders) GetOrders(ctx context.Context, accountID string) ([]domain.Order, error) {
	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetOrders(ctx, &pb.GetOrdersRequest{AccountId: accountID})
	if err != nil {
		return nil, domain.Upstream("get orders", err)
	}

	out := make([]domain.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		if !orderIsActive(o.ExecutionReportStatus) {
			continue
		}
		out = append(out, domain.Order{
			OrderID:       o.OrderId,
			InstrumentID:  o.InstrumentUid,
			Direction:     o.Direction.String(),
			OrderType:     o.OrderType.String(),
			Status:        o.ExecutionReportStatus.String(),
			LotsRequested: o.LotsRequested,
			LotsExecuted:  o.LotsExecuted,
			Price:         domain.MoneyToDecimalPtr(o.InitialSecurityPrice),
			Currency:      o.Currency,
			OrderDate:     domain.TimestampToISO(o.OrderDate),
		})
	}
	return out, nil
}

func orderIsActive(st pb.OrderExecutionReportStatus) bool {
	return st == pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_NEW ||
		st == pb.OrderExecutionReportStatus_EXECUTION_REPORT_STATUS_PARTIALLYFILL
}
