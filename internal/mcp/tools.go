package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tinvest-mcp/internal/service"
)

func registerTools(server *mcp.Server, deps Services) {
	registerPortfolioTools(server, deps.Portfolio)
	registerOperationsTools(server, deps.Operations)
	registerMarketDataTools(server, deps.MarketData)
	registerOrderTools(server, deps.Orders)
	registerStopOrderTools(server, deps.StopOrders)
	registerInstrumentTools(server, deps.Instruments)
}

func registerPortfolioTools(server *mcp.Server, portfolio PortfolioReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_portfolio",
		Description: "Get the account portfolio: positions, valuations and yield",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in accountInput) (*mcp.CallToolResult, portfolioOutput, error) {
		p, err := portfolio.GetPortfolio(ctx, in.AccountID)
		if err != nil {
			return nil, portfolioOutput{}, toolError(err)
		}
		return nil, portfolioOutput{Portfolio: p}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cash_balance",
		Description: "Get available and blocked cash balances per currency",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in accountInput) (*mcp.CallToolResult, cashBalanceOutput, error) {
		b, err := portfolio.GetCashBalance(ctx, in.AccountID)
		if err != nil {
			return nil, cashBalanceOutput{}, toolError(err)
		}
		return nil, cashBalanceOutput{Balance: b}, nil
	})
}

func registerOperationsTools(server *mcp.Server, operations OperationsReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_operations",
		Description: "List account operations (trades, fees, cash flows) for a period",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
		ops, err := operations.GetOperations(ctx, service.OperationsQuery{
			AccountID:     in.AccountID,
			FromDate:      in.FromDate,
			ToDate:        in.ToDate,
			State:         in.State,
			InstrumentUID: in.InstrumentUID,
		})
		if err != nil {
			return nil, operationsOutput{}, toolError(err)
		}
		return nil, operationsOutput{Operations: ops}, nil
	})
}

func registerMarketDataTools(server *mcp.Server, marketData MarketDataReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_last_prices",
		Description: "Get latest prices for a list of instruments",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in lastPricesInput) (*mcp.CallToolResult, lastPricesOutput, error) {
		prices, err := marketData.GetLastPrices(ctx, service.LastPricesQuery{InstrumentUIDs: in.InstrumentUIDs})
		if err != nil {
			return nil, lastPricesOutput{}, toolError(err)
		}
		return nil, lastPricesOutput{Prices: prices}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_candles",
		Description: "Get OHLCV candles for an instrument over a period",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in candlesInput) (*mcp.CallToolResult, candlesOutput, error) {
		series, err := marketData.GetCandles(ctx, service.CandlesQuery{
			InstrumentUID: in.InstrumentUID,
			FromDate:      in.FromDate,
			ToDate:        in.ToDate,
			Interval:      in.Interval,
		})
		if err != nil {
			return nil, candlesOutput{}, toolError(err)
		}
		return nil, candlesOutput{Series: series}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_order_book",
		Description: "Get the order book (bids and asks) for an instrument",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in orderBookInput) (*mcp.CallToolResult, orderBookOutput, error) {
		book, err := marketData.GetOrderBook(ctx, service.OrderBookQuery{
			InstrumentUID: in.InstrumentUID,
			Depth:         in.Depth,
		})
		if err != nil {
			return nil, orderBookOutput{}, toolError(err)
		}
		return nil, orderBookOutput{OrderBook: book}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trading_status",
		Description: "Get the current trading status of an instrument",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in tradingStatusInput) (*mcp.CallToolResult, tradingStatusOutput, error) {
		st, err := marketData.GetTradingStatus(ctx, in.InstrumentUID)
		if err != nil {
			return nil, tradingStatusOutput{}, toolError(err)
		}
		return nil, tradingStatusOutput{Status: st}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_trading_schedules",
		Description: "Get exchange trading schedules for a period",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in schedulesInput) (*mcp.CallToolResult, schedulesOutput, error) {
		schedules, err := marketData.GetTradingSchedules(ctx, service.SchedulesQuery{
			Exchange: in.Exchange,
			FromDate: in.FromDate,
			ToDate:   in.ToDate,
		})
		if err != nil {
			return nil, schedulesOutput{}, toolError(err)
		}
		return nil, schedulesOutput{Schedules: schedules}, nil
	})
}

func registerOrderTools(server *mcp.Server, orders OrderWriter) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_order",
		Description: "Place an exchange order. Non-idempotent: each call places a new order",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in createOrderInput) (*mcp.CallToolResult, orderConfirmationOutput, error) {
		conf, err := orders.CreateOrder(ctx, service.CreateOrderRequest{
			AccountID:     in.AccountID,
			InstrumentUID: in.InstrumentUID,
			Quantity:      in.Quantity,
			Direction:     in.Direction,
			OrderType:     in.OrderType,
			Price:         in.Price,
		})
		if err != nil {
			return nil, orderConfirmationOutput{}, toolError(err)
		}
		return nil, orderConfirmationOutput{Order: conf}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_order",
		Description: "Cancel a working exchange order. Non-idempotent",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in cancelOrderInput) (*mcp.CallToolResult, cancelOutput, error) {
		res, err := orders.CancelOrder(ctx, in.AccountID, in.OrderID)
		if err != nil {
			return nil, cancelOutput{}, toolError(err)
		}
		return nil, cancelOutput{Result: res}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_orders",
		Description: "List orders still working at the exchange (new or partially filled)",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in accountInput) (*mcp.CallToolResult, ordersOutput, error) {
		list, err := orders.GetOrders(ctx, in.AccountID)
		if err != nil {
			return nil, ordersOutput{}, toolError(err)
		}
		return nil, ordersOutput{Orders: list}, nil
	})
}

func registerStopOrderTools(server *mcp.Server, stopOrders StopOrderWriter) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "post_stop_order",
		Description: "Place a stop order (take-profit, stop-loss or stop-limit). Non-idempotent",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in postStopOrderInput) (*mcp.CallToolResult, stopOrderConfirmationOutput, error) {
		conf, err := stopOrders.PostStopOrder(ctx, service.PostStopOrderRequest{
			AccountID:      in.AccountID,
			InstrumentUID:  in.InstrumentUID,
			Quantity:       in.Quantity,
			Direction:      in.Direction,
			StopOrderType:  in.StopOrderType,
			StopPrice:      in.StopPrice,
			ExpirationType: in.ExpirationType,
			Price:          in.Price,
			ExpireDate:     in.ExpireDate,
		})
		if err != nil {
			return nil, stopOrderConfirmationOutput{}, toolError(err)
		}
		return nil, stopOrderConfirmationOutput{StopOrder: conf}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_stop_order",
		Description: "Cancel an active stop order. Non-idempotent",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in cancelStopOrderInput) (*mcp.CallToolResult, cancelOutput, error) {
		res, err := stopOrders.CancelStopOrder(ctx, in.AccountID, in.StopOrderID)
		if err != nil {
			return nil, cancelOutput{}, toolError(err)
		}
		return nil, cancelOutput{Result: res}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stop_orders",
		Description: "List active stop orders",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in accountInput) (*mcp.CallToolResult, stopOrdersOutput, error) {
		list, err := stopOrders.GetStopOrders(ctx, in.AccountID)
		if err != nil {
			return nil, stopOrdersOutput{}, toolError(err)
		}
		return nil, stopOrdersOutput{StopOrders: list}, nil
	})
}

func registerInstrumentTools(server *mcp.Server, instruments InstrumentReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_instrument",
		Description: "Search instruments by ticker, ISIN, FIGI or name",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in findInstrumentInput) (*mcp.CallToolResult, instrumentsOutput, error) {
		found, err := instruments.FindInstrument(ctx, in.Query)
		if err != nil {
			return nil, instrumentsOutput{}, toolError(err)
		}
		return nil, instrumentsOutput{Instruments: found}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_instrument_by_uid",
		Description: "Get one instrument's reference data by uid",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in instrumentByUIDInput) (*mcp.CallToolResult, instrumentOutput, error) {
		instrument, err := instruments.GetInstrumentByUID(ctx, in.UID)
		if err != nil {
			return nil, instrumentOutput{}, toolError(err)
		}
		return nil, instrumentOutput{Instrument: instrument}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shares",
		Description: "List tradable shares, paginated",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listingInput) (*mcp.CallToolResult, instrumentPageOutput, error) {
		page, err := instruments.GetShares(ctx, in.query())
		if err != nil {
			return nil, instrumentPageOutput{}, toolError(err)
		}
		return nil, instrumentPageOutput{Page: page}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_bonds",
		Description: "List tradable bonds, paginated",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listingInput) (*mcp.CallToolResult, instrumentPageOutput, error) {
		page, err := instruments.GetBonds(ctx, in.query())
		if err != nil {
			return nil, instrumentPageOutput{}, toolError(err)
		}
		return nil, instrumentPageOutput{Page: page}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_etfs",
		Description: "List tradable ETFs, paginated",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listingInput) (*mcp.CallToolResult, instrumentPageOutput, error) {
		page, err := instruments.GetETFs(ctx, in.query())
		if err != nil {
			return nil, instrumentPageOutput{}, toolError(err)
		}
		return nil, instrumentPageOutput{Page: page}, nil
	})
}
