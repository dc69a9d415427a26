package service

import (
	"context"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/guard"
)

type operationsClient interface {
	GetOperations(ctx context.Context, in *pb.OperationsRequest, opts ...grpc.CallOption) (*pb.OperationsResponse, error)
}

type Operations struct {
	client operationsClient
	gate   *guard.AccountGate
	now    func() time.Time
}

func NewOperations(client operationsClient, gate *guard.AccountGate) *Operations {
	return &Operations{client: client, gate: gate, now: time.Now}
}

type OperationsQuery struct {
	AccountID     string `json:"account_id"`
	FromDate      string `json:"from_date" validate:"required"`
	ToDate        string `json:"to_date"`
	State         string `json:"state"`
	InstrumentUID string `json:"instrument_uid"`
}

// GetOperations lists account operations for a period. With no state filter
// supplied, operations of all states are returned.
func (s *Operations) GetOperations(ctx context.Context, q OperationsQuery) ([]domain.Operation, error) {
	if err := checkStruct(q); err != nil {
		return nil, err
	}

	from, err := domain.ParseTime("from_date", q.FromDate)
	if err != nil {
		return nil, err
	}
	to := s.now().UTC()
	if q.ToDate != "" {
		if to, err = domain.ParseTime("to_date", q.ToDate); err != nil {
			return nil, err
		}
	}

	state := pb.OperationState_OPERATION_STATE_UNSPECIFIED
	if q.State != "" {
		if state, err = domain.OperationStateFromToken(q.State); err != nil {
			return nil, err
		}
	}

	accountID, err := s.gate.Resolve(q.AccountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetOperations(ctx, &pb.OperationsRequest{
		AccountId: accountID,
		From:      timestamppb.New(from),
		To:        timestamppb.New(to),
		State:     state,
		Figi:      q.InstrumentUID,
	})
	if err != nil {
		return nil, domain.Upstream("get operations", err)
	}

	out := make([]domain.Operation, 0, len(resp.Operations))
	for _, op := range resp.Operations {
		out = append(out, domain.Operation{
			ID:              op.Id,
			Date:            domain.TimestampToISO(op.Date),
			Type:            op.OperationType.String(),
			TypeDescription: op.Type,
			InstrumentID:    op.InstrumentUid,
			InstrumentType:  op.InstrumentType,
			Payment:         domain.MoneyToDecimal(op.Payment),
			Currency:        op.Currency,
			Price:           domain.MoneyToDecimalPtr(op.Price),
			Quantity:        op.Quantity,
			QuantityRest:    op.QuantityRest,
			State:           op.State.String(),
		})
	}
	return out, nil
}
