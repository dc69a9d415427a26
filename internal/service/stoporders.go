package service

import (
	"context"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/guard"
)

type stopOrdersClient interface {
	PostStopOrder(ctx context.Context, in *pb.PostStopOrderRequest, opts ...grpc.CallOption) (*pb.PostStopOrderResponse, error)
	CancelStopOrder(ctx context.Context, in *pb.CancelStopOrderRequest, opts ...grpc.CallOption) (*pb.CancelStopOrderResponse, error)
	GetStopOrders(ctx context.Context, in *pb.GetStopOrdersRequest, opts ...grpc.CallOption) (*pb.GetStopOrdersResponse, error)
}

type StopOrders struct {
	client stopOrdersClient
	gate   *guard.AccountGate
}

func NewStopOrders(client stopOrdersClient, gate *guard.AccountGate) *StopOrders {
	return &StopOrders{client: client, gate: gate}
}

type PostStopOrderRequest struct {
	AccountID      string `json:"account_id"`
	InstrumentUID  string `json:"instrument_uid" validate:"required"`
	Quantity       int64  `json:"quantity" validate:"required,gt=0"`
	Direction      string `json:"direction" validate:"required"`
	StopOrderType  string `json:"stop_order_type" validate:"required"`
	StopPrice      string `json:"stop_price" validate:"required"`
	ExpirationType string `json:"expiration_type" validate:"required"`
	Price          string `json:"price"`
	ExpireDate     string `json:"expire_date"`
}

func (s *StopOrders) PostStopOrder(ctx context.Context, req PostStopOrderRequest) (*domain.StopOrderConfirmation, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	direction, err := domain.StopOrderDirectionFromToken(req.Direction)
	if err != nil {
		return nil, err
	}
	stopType, err := domain.StopOrderTypeFromToken(req.StopOrderType)
	if err != nil {
		return nil, err
	}
	expiration, err := domain.StopOrderExpirationFromToken(req.ExpirationType)
	if err != nil {
		return nil, err
	}

	stopPrice, err := domain.ParsePrice("stop_price", req.StopPrice)
	if err != nil {
		return nil, err
	}

	// Execution price exists only on stop-limit orders; take-profit and
	// stop-loss execute at market once activated.
	var price *pb.Quotation
	if domain.IsStopLimit(stopType) {
		if req.Price == "" {
			return nil, domain.Validationf("price", "is required for %s", req.StopOrderType)
		}
		p, err := domain.ParsePrice("price", req.Price)
		if err != nil {
			return nil, err
		}
		price = domain.DecimalToQuotation(p)
	} else if req.Price != "" {
		return nil, domain.Validationf("price", "must be omitted for %s", req.StopOrderType)
	}

	var expireDate *timestamppb.Timestamp
	if domain.IsGoodTillDate(expiration) {
		if req.ExpireDate == "" {
			return nil, domain.Validationf("expire_date", "is required for %s", req.ExpirationType)
		}
		t, err := domain.ParseTime("expire_date", req.ExpireDate)
		if err != nil {
			return nil, err
		}
		expireDate = timestamppb.New(t)
	} else if req.ExpireDate != "" {
		return nil, domain.Validationf("expire_date", "must be omitted for %s", req.ExpirationType)
	}

	accountID, err := s.gate.Resolve(req.AccountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.PostStopOrder(ctx, &pb.PostStopOrderRequest{
		Quantity:       req.Quantity,
		Price:          price,
		StopPrice:      domain.DecimalToQuotation(stopPrice),
		Direction:      direction,
		AccountId:      accountID,
		ExpirationType: expiration,
		StopOrderType:  stopType,
		ExpireDate:     expireDate,
		InstrumentId:   req.InstrumentUID,
	})
	if err != nil {
		return nil, domain.Upstream("post stop order", err)
	}

	return &domain.StopOrderConfirmation{
		StopOrderID:    resp.StopOrderId,
		OrderRequestID: resp.OrderRequestId,
	}, nil
}

func (s *StopOrders) CancelStopOrder(ctx context.Context, accountID, stopOrderID string) (*domain.CancelConfirmation, error) {
	if stopOrderID == "" {
		return nil, domain.Validationf("stop_order_id", "is required")
	}

	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.CancelStopOrder(ctx, &pb.CancelStopOrderRequest{
		AccountId:   accountID,
		StopOrderId: stopOrderID,
	})
	if err != nil {
		return nil, domain.Upstream("cancel stop order", err)
	}

	return &domain.CancelConfirmation{
		Success: true,
		Time:    domain.TimestampToISO(resp.Time),
	}, nil
}

func (s *StopOrders) GetStopOrders(ctx context.Context, accountID string) ([]domain.StopOrder, error) {
	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetStopOrders(ctx, &pb.GetStopOrdersRequest{AccountId: accountID})
	if err != nil {
		return nil, domain.Upstream("get stop orders", err)
	}

	out := make([]domain.StopOrder, 0, len(resp.StopOrders))
	for _, so := range resp.StopOrders {
		out = append(out, domain.StopOrder{
			StopOrderID:    so.StopOrderId,
			InstrumentID:   so.InstrumentUid,
			Direction:      so.Direction.String(),
			StopOrderType:  so.OrderType.String(),
			Lots:           so.LotsRequested,
			StopPrice:      domain.MoneyToDecimal(so.StopPrice),
			Price:          domain.MoneyToDecimalPtr(so.Price),
			Currency:       so.Currency,
			CreateDate:     domain.TimestampToISO(so.CreateDate),
			ActivationTime: domain.TimestampToISO(so.ActivationDateTime),
			ExpirationTime: domain.TimestampToISO(so.ExpirationTime),
		})
	}
	return out, nil
}
