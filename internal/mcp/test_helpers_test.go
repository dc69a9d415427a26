package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/service"
)

type stubPortfolio struct{}

func (stubPortfolio) GetPortfolio(_ context.Context, accountID string) (*domain.Portfolio, error) {
	if accountID != "" && accountID != "acc-1" {
		return nil, &domain.AuthorizationError{AccountID: accountID}
	}
	return &domain.Portfolio{
		AccountID:  "acc-1",
		TotalValue: decimal.RequireFromString("100000"),
		Positions: []domain.PortfolioPosition{{
			InstrumentID: "uid-1",
			Quantity:     decimal.RequireFromString("10"),
			Currency:     "rub",
		}},
	}, nil
}

func (stubPortfolio) GetCashBalance(context.Context, string) (*domain.CashBalance, error) {
	return &domain.CashBalance{Money: []domain.MoneyAmount{{
		Value:    decimal.RequireFromString("5000.25"),
		Currency: "rub",
	}}}, nil
}

type stubOperations struct{}

func (stubOperations) GetOperations(_ context.Context, q service.OperationsQuery) ([]domain.Operation, error) {
	if q.FromDate == "" {
		return nil, domain.Validationf("from_date", "is required")
	}
	return []domain.Operation{{ID: "op-1", State: "OPERATION_STATE_EXECUTED", Currency: "rub"}}, nil
}

type stubMarketData struct{}

func (stubMarketData) GetLastPrices(_ context.Context, q service.LastPricesQuery) ([]domain.LastPrice, error) {
	out := make([]domain.LastPrice, 0, len(q.InstrumentUIDs))
	for _, uid := range q.InstrumentUIDs {
		out = append(out, domain.LastPrice{
			InstrumentID: uid,
			Price:        decimal.RequireFromString("250.75"),
		})
	}
	return out, nil
}

func (stubMarketData) GetCandles(_ context.Context, q service.CandlesQuery) (*domain.CandleSeries, error) {
	return &domain.CandleSeries{InstrumentID: q.InstrumentUID, Interval: "day"}, nil
}

func (stubMarketData) GetOrderBook(_ context.Context, q service.OrderBookQuery) (*domain.OrderBook, error) {
	depth := q.Depth
	if depth == 0 {
		depth = 10
	}
	return &domain.OrderBook{InstrumentID: q.InstrumentUID, Depth: depth}, nil
}

func (stubMarketData) GetTradingStatus(_ context.Context, uid string) (*domain.TradingStatus, error) {
	return &domain.TradingStatus{InstrumentID: uid, TradingStatus: "SECURITY_TRADING_STATUS_NORMAL_TRADING"}, nil
}

func (stubMarketData) GetTradingSchedules(context.Context, service.SchedulesQuery) ([]domain.TradingSchedule, error) {
	return []domain.TradingSchedule{{Exchange: "MOEX"}}, nil
}

type stubOrders struct {
	lastCreate service.CreateOrderRequest
}

func (s *stubOrders) CreateOrder(_ context.Context, req service.CreateOrderRequest) (*domain.OrderConfirmation, error) {
	if req.OrderType == "ORDER_TYPE_LIMIT" && req.Price == "" {
		return nil, domain.Validationf("price", "is required for %s", req.OrderType)
	}
	s.lastCreate = req
	return &domain.OrderConfirmation{
		OrderID:   "order-1",
		Status:    "EXECUTION_REPORT_STATUS_NEW",
		Direction: req.Direction,
	}, nil
}

func (s *stubOrders) CancelOrder(context.Context, string, string) (*domain.CancelConfirmation, error) {
	return &domain.CancelConfirmation{Success: true}, nil
}

func (s *stubOrders) GetOrders(context.Context, string) ([]domain.Order, error) {
	return []domain.Order{{OrderID: "order-1", Status: "EXECUTION_REPORT_STATUS_NEW"}}, nil
}

type stubStopOrders struct{}

func (stubStopOrders) PostStopOrder(_ context.Context, req service.PostStopOrderRequest) (*domain.StopOrderConfirmation, error) {
	if req.ExpirationType == "STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_DATE" && req.ExpireDate == "" {
		return nil, domain.Validationf("expire_date", "is required for %s", req.ExpirationType)
	}
	return &domain.StopOrderConfirmation{StopOrderID: "stop-1"}, nil
}

func (stubStopOrders) CancelStopOrder(context.Context, string, string) (*domain.CancelConfirmation, error) {
	return &domain.CancelConfirmation{Success: true}, nil
}

func (stubStopOrders) GetStopOrders(context.Context, string) ([]domain.StopOrder, error) {
	return nil, nil
}

type stubInstruments struct{}

func (stubInstruments) FindInstrument(context.Context, string) ([]domain.Instrument, error) {
	return []domain.Instrument{{UID: "uid-1", Ticker: "SBER"}}, nil
}

func (stubInstruments) GetInstrumentByUID(_ context.Context, uid string) (*domain.Instrument, error) {
	return &domain.Instrument{UID: uid, Ticker: "SBER"}, nil
}

func (stubInstruments) GetShares(_ context.Context, q service.ListingQuery) (*domain.InstrumentPage, error) {
	return &domain.InstrumentPage{Limit: 10, Total: 0}, nil
}

func (stubInstruments) GetBonds(context.Context, service.ListingQuery) (*domain.InstrumentPage, error) {
	return &domain.InstrumentPage{Limit: 10}, nil
}

func (stubInstruments) GetETFs(context.Context, service.ListingQuery) (*domain.InstrumentPage, error) {
	return &domain.InstrumentPage{Limit: 10}, nil
}

func testServer() (*sdkmcp.Server, *stubOrders) {
	orders := &stubOrders{}
	srv := NewServer(nil, Services{
		Portfolio:   stubPortfolio{},
		Operations:  stubOperations{},
		MarketData:  stubMarketData{},
		Orders:      orders,
		StopOrders:  stubStopOrders{},
		Instruments: stubInstruments{},
	})
	return srv, orders
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func textContent(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
