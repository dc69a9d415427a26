package service

import (
	"context"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/guard"
)

type portfolioClient interface {
	GetPortfolio(ctx context.Context, in *pb.PortfolioRequest, opts ...grpc.CallOption) (*pb.PortfolioResponse, error)
	GetPositions(ctx context.Context, in *pb.PositionsRequest, opts ...grpc.CallOption) (*pb.PositionsResponse, error)
}

// Portfolio serves the account composition and cash balance reads.
type Portfolio struct {
	client portfolioClient
	gate   *guard.AccountGate
}

func NewPortfolio(client portfolioClient, gate *guard.AccountGate) *Portfolio {
	return &Portfolio{client: client, gate: gate}
}

func (s *Portfolio) GetPortfolio(ctx context.Context, accountID string) (*domain.Portfolio, error) {
	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetPortfolio(ctx, &pb.PortfolioRequest{AccountId: accountID})
	if err != nil {
		return nil, domain.Upstream("get portfolio", err)
	}

	positions := make([]domain.PortfolioPosition, 0, len(resp.Positions))
	for _, p := range resp.Positions {
		currency := "rub"
		if p.AveragePositionPrice != nil {
			currency = p.AveragePositionPrice.Currency
		}
		positions = append(positions, domain.PortfolioPosition{
			InstrumentID:    p.InstrumentUid,
			InstrumentType:  p.InstrumentType,
			Quantity:        domain.QuotationToDecimal(p.Quantity),
			AveragePrice:    domain.MoneyToDecimal(p.AveragePositionPrice),
			CurrentPrice:    domain.MoneyToDecimal(p.CurrentPrice),
			ExpectedYield:   domain.QuotationToDecimal(p.ExpectedYield),
			Currency:        currency,
			Blocked:         p.Blocked,
			AccruedInterest: domain.MoneyToDecimalPtr(p.CurrentNkd),
		})
	}

	return &domain.Portfolio{
		AccountID:         resp.AccountId,
		Positions:         positions,
		TotalValue:        domain.MoneyToDecimal(resp.TotalAmountPortfolio),
		TotalYieldPercent: domain.QuotationToDecimal(resp.ExpectedYield),
		DailyYield:        domain.MoneyToDecimal(resp.DailyYield),
		DailyYieldPercent: domain.QuotationToDecimal(resp.DailyYieldRelative),
	}, nil
}

func (s *Portfolio) GetCashBalance(ctx context.Context, accountID string) (*domain.CashBalance, error) {
	accountID, err := s.gate.Resolve(accountID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetPositions(ctx, &pb.PositionsRequest{AccountId: accountID})
	if err != nil {
		return nil, domain.Upstream("get positions", err)
	}

	return &domain.CashBalance{
		Money:   adaptMoneyList(resp.Money),
		Blocked: adaptMoneyList(resp.Blocked),
	}, nil
}

func adaptMoneyList(values []*pb.MoneyValue) []domain.MoneyAmount {
	out := make([]domain.MoneyAmount, 0, len(values))
	for _, v := range values {
		out = append(out, domain.MoneyAmount{
			Value:    domain.MoneyToDecimal(v),
			Currency: v.Currency,
		})
	}
	return out
}
