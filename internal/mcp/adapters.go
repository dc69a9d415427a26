package mcp

import (
	"context"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/service"
)

// PortfolioReader exposes the account composition reads.
type PortfolioReader interface {
	GetPortfolio(ctx context.Context, accountID string) (*domain.Portfolio, error)
	GetCashBalance(ctx context.Context, accountID string) (*domain.CashBalance, error)
}

// OperationsReader exposes the operations history read.
type OperationsReader interface {
	GetOperations(ctx context.Context, q service.OperationsQuery) ([]domain.Operation, error)
}

// MarketDataReader exposes quotes, candles, the order book, trading status
// and exchange schedules.
type MarketDataReader interface {
	GetLastPrices(ctx context.Context, q service.LastPricesQuery) ([]domain.LastPrice, error)
	GetCandles(ctx context.Context, q service.CandlesQuery) (*domain.CandleSeries, error)
	GetOrderBook(ctx context.Context, q service.OrderBookQuery) (*domain.OrderBook, error)
	GetTradingStatus(ctx context.Context, instrumentUID string) (*domain.TradingStatus, error)
	GetTradingSchedules(ctx context.Context, q service.SchedulesQuery) ([]domain.TradingSchedule, error)
}

// OrderWriter places, cancels and lists exchange orders.
type OrderWriter interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*domain.OrderConfirmation, error)
	CancelOrder(ctx context.Context, accountID, orderID string) (*domain.CancelConfirmation, error)
	GetOrders(ctx context.Context, accountID string) ([]domain.Order, error)
}

// StopOrderWriter places, cancels and lists stop orders.
type StopOrderWriter interface {
	PostStopOrder(ctx context.Context, req service.PostStopOrderRequest) (*domain.StopOrderConfirmation, error)
	CancelStopOrder(ctx context.Context, accountID, stopOrderID string) (*domain.CancelConfirmation, error)
	GetStopOrders(ctx context.Context, accountID string) ([]domain.StopOrder, error)
}

// InstrumentReader exposes reference data: search, lookup and listings.
type InstrumentReader interface {
	FindInstrument(ctx context.Context, query string) ([]domain.Instrument, error)
	GetInstrumentByUID(ctx context.Context, uid string) (*domain.Instrument, error)
	GetShares(ctx context.Context, q service.ListingQuery) (*domain.InstrumentPage, error)
	GetBonds(ctx context.Context, q service.ListingQuery) (*domain.InstrumentPage, error)
	GetETFs(ctx context.Context, q service.ListingQuery) (*domain.InstrumentPage, error)
}
