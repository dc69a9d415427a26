package mcp

import (
	"fmt"

	"tinvest-mcp/internal/domain"
	"tinvest-mcp/internal/service"
)

// Tool inputs mirror the service request shapes one to one; outputs wrap the
// domain models so callers always receive a JSON object at the top level.

type accountInput struct {
	AccountID string `json:"account_id,omitempty" jsonschema:"optional account id, must match the configured account when supplied"`
}

type portfolioOutput struct {
	Portfolio *domain.Portfolio `json:"portfolio"`
}

type cashBalanceOutput struct {
	Balance *domain.CashBalance `json:"balance"`
}

type operationsInput struct {
	AccountID     string `json:"account_id,omitempty" jsonschema:"optional account id"`
	FromDate      string `json:"from_date" jsonschema:"period start, ISO-8601 date-time"`
	ToDate        string `json:"to_date,omitempty" jsonschema:"period end, defaults to now"`
	State         string `json:"state,omitempty" jsonschema:"optional filter: OPERATION_STATE_EXECUTED or OPERATION_STATE_CANCELED"`
	InstrumentUID string `json:"instrument_uid,omitempty" jsonschema:"optional instrument filter"`
}

type operationsOutput struct {
	Operations []domain.Operation `json:"operations"`
}

type lastPricesInput struct {
	InstrumentUIDs []string `json:"instrument_uids" jsonschema:"instrument uids to quote"`
}

type lastPricesOutput struct {
	Prices []domain.LastPrice `json:"prices"`
}

type candlesInput struct {
	InstrumentUID string `json:"instrument_uid" jsonschema:"instrument uid"`
	FromDate      string `json:"from_date" jsonschema:"period start, ISO-8601 date-time"`
	ToDate        string `json:"to_date,omitempty" jsonschema:"period end, defaults to now"`
	Interval      string `json:"interval,omitempty" jsonschema:"candle interval: 1min, 5min, 15min, hour, day or the CANDLE_INTERVAL_* tokens"`
}

type candlesOutput struct {
	Series *domain.CandleSeries `json:"series"`
}

type orderBookInput struct {
	InstrumentUID string `json:"instrument_uid" jsonschema:"instrument uid"`
	Depth         int32  `json:"depth,omitempty" jsonschema:"price levels per side, default 10, max 50"`
}

type orderBookOutput struct {
	OrderBook *domain.OrderBook `json:"order_book"`
}

type tradingStatusInput struct {
	InstrumentUID string `json:"instrument_uid" jsonschema:"instrument uid"`
}

type tradingStatusOutput struct {
	Status *domain.TradingStatus `json:"status"`
}

type schedulesInput struct {
	Exchange string `json:"exchange,omitempty" jsonschema:"exchange code (MOEX, SPB, ...), default MOEX"`
	FromDate string `json:"from_date,omitempty" jsonschema:"period start, defaults to today"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"period end, defaults to from_date"`
}

type schedulesOutput struct {
	Schedules []domain.TradingSchedule `json:"schedules"`
}

type createOrderInput struct {
	AccountID     string `json:"account_id,omitempty" jsonschema:"optional account id"`
	InstrumentUID string `json:"instrument_uid" jsonschema:"instrument uid"`
	Quantity      int64  `json:"quantity" jsonschema:"lots, positive integer"`
	Direction     string `json:"direction" jsonschema:"ORDER_DIRECTION_BUY or ORDER_DIRECTION_SELL"`
	OrderType     string `json:"order_type" jsonschema:"ORDER_TYPE_MARKET or ORDER_TYPE_LIMIT"`
	Price         string `json:"price,omitempty" jsonschema:"decimal price per instrument, required for limit orders, omit for market"`
}

type orderConfirmationOutput struct {
	Order *domain.OrderConfirmation `json:"order"`
}

type cancelOrderInput struct {
	AccountID string `json:"account_id,omitempty" jsonschema:"optional account id"`
	OrderID   string `json:"order_id" jsonschema:"exchange order id to cancel"`
}

type cancelOutput struct {
	Result *domain.CancelConfirmation `json:"result"`
}

type ordersOutput struct {
	Orders []domain.Order `json:"orders"`
}

type postStopOrderInput struct {
	AccountID      string `json:"account_id,omitempty" jsonschema:"optional account id"`
	InstrumentUID  string `json:"instrument_uid" jsonschema:"instrument uid"`
	Quantity       int64  `json:"quantity" jsonschema:"lots, positive integer"`
	Direction      string `json:"direction" jsonschema:"STOP_ORDER_DIRECTION_BUY or STOP_ORDER_DIRECTION_SELL"`
	StopOrderType  string `json:"stop_order_type" jsonschema:"STOP_ORDER_TYPE_TAKE_PROFIT, STOP_ORDER_TYPE_STOP_LOSS or STOP_ORDER_TYPE_STOP_LIMIT"`
	StopPrice      string `json:"stop_price" jsonschema:"decimal activation price"`
	ExpirationType string `json:"expiration_type" jsonschema:"STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_CANCEL or STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_DATE"`
	Price          string `json:"price,omitempty" jsonschema:"decimal execution price, required for stop-limit only"`
	ExpireDate     string `json:"expire_date,omitempty" jsonschema:"ISO-8601 expiry, required for good-till-date only"`
}

type stopOrderConfirmationOutput struct {
	StopOrder *domain.StopOrderConfirmation `json:"stop_order"`
}

type cancelStopOrderInput struct {
	AccountID   string `json:"account_id,omitempty" jsonschema:"optional account id"`
	StopOrderID string `json:"stop_order_id" jsonschema:"stop order id to cancel"`
}

type stopOrdersOutput struct {
	StopOrders []domain.StopOrder `json:"stop_orders"`
}

type findInstrumentInput struct {
	Query string `json:"query" jsonschema:"ticker, ISIN, FIGI or name fragment"`
}

type instrumentsOutput struct {
	Instruments []domain.Instrument `json:"instruments"`
}

type instrumentByUIDInput struct {
	UID string `json:"uid" jsonschema:"instrument uid"`
}

type instrumentOutput struct {
	Instrument *domain.Instrument `json:"instrument"`
}

type listingInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"page size, default 10"`
	Offset int `json:"offset,omitempty" jsonschema:"items to skip, default 0"`
}

type instrumentPageOutput struct {
	Page *domain.InstrumentPage `json:"page"`
}

func (in listingInput) query() service.ListingQuery {
	return service.ListingQuery{Limit: in.Limit, Offset: in.Offset}
}

// toolError prefixes the error kind so callers can branch on it without
// parsing free-form text.
func toolError(err error) error {
	switch {
	case domain.IsValidation(err):
		return fmt.Errorf("ValidationError: %w", err)
	case domain.IsAuthorization(err):
		return fmt.Errorf("AuthorizationError: %w", err)
	case domain.IsUpstream(err):
		return fmt.Errorf("UpstreamError: %w", err)
	default:
		return err
	}
}
