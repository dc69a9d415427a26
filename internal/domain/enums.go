package domain

import (
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
)

// Static token tables between the string vocabulary exposed to tool callers
// and the upstream enums. The reverse direction is the generated String()
// method of each enum, which yields exactly the same token, so any token
// accepted on input reappears verbatim on output.

var candleIntervals = map[string]pb.CandleInterval{
	"CANDLE_INTERVAL_1_MIN":  pb.CandleInterval_CANDLE_INTERVAL_1_MIN,
	"CANDLE_INTERVAL_5_MIN":  pb.CandleInterval_CANDLE_INTERVAL_5_MIN,
	"CANDLE_INTERVAL_15_MIN": pb.CandleInterval_CANDLE_INTERVAL_15_MIN,
	"CANDLE_INTERVAL_HOUR":   pb.CandleInterval_CANDLE_INTERVAL_HOUR,
	"CANDLE_INTERVAL_DAY":    pb.CandleInterval_CANDLE_INTERVAL_DAY,

	// Short aliases kept for callers that prefer human tokens.
	"1min":  pb.CandleInterval_CANDLE_INTERVAL_1_MIN,
	"5min":  pb.CandleInterval_CANDLE_INTERVAL_5_MIN,
	"15min": pb.CandleInterval_CANDLE_INTERVAL_15_MIN,
	"hour":  pb.CandleInterval_CANDLE_INTERVAL_HOUR,
	"day":   pb.CandleInterval_CANDLE_INTERVAL_DAY,
}

var orderDirections = map[string]pb.OrderDirection{
	"ORDER_DIRECTION_BUY":  pb.OrderDirection_ORDER_DIRECTION_BUY,
	"ORDER_DIRECTION_SELL": pb.OrderDirection_ORDER_DIRECTION_SELL,
}

var orderTypes = map[string]pb.OrderType{
	"ORDER_TYPE_MARKET": pb.OrderType_ORDER_TYPE_MARKET,
	"ORDER_TYPE_LIMIT":  pb.OrderType_ORDER_TYPE_LIMIT,
}

var stopOrderDirections = map[string]pb.StopOrderDirection{
	"STOP_ORDER_DIRECTION_BUY":  pb.StopOrderDirection_STOP_ORDER_DIRECTION_BUY,
	"STOP_ORDER_DIRECTION_SELL": pb.StopOrderDirection_STOP_ORDER_DIRECTION_SELL,
}

var stopOrderTypes = map[string]pb.StopOrderType{
	"STOP_ORDER_TYPE_TAKE_PROFIT": pb.StopOrderType_STOP_ORDER_TYPE_TAKE_PROFIT,
	"STOP_ORDER_TYPE_STOP_LOSS":   pb.StopOrderType_STOP_ORDER_TYPE_STOP_LOSS,
	"STOP_ORDER_TYPE_STOP_LIMIT":  pb.StopOrderType_STOP_ORDER_TYPE_STOP_LIMIT,
}

var stopOrderExpirationTypes = map[string]pb.StopOrderExpirationType{
	"STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_CANCEL": pb.StopOrderExpirationType_STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_CANCEL,
	"STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_DATE":   pb.StopOrderExpirationType_STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_DATE,
}

var operationStates = map[string]pb.OperationState{
	"OPERATION_STATE_EXECUTED": pb.OperationState_OPERATION_STATE_EXECUTED,
	"OPERATION_STATE_CANCELED": pb.OperationState_OPERATION_STATE_CANCELED,
}

func lookup[E ~int32](table map[string]E, field, token string) (E, error) {
	v, ok := table[token]
	if !ok {
		var zero E
		return zero, Validationf(field, "unknown token %q", token)
	}
	return v, nil
}

func CandleIntervalFromToken(token string) (pb.CandleInterval, error) {
	return lookup(candleIntervals, "interval", token)
}

func OrderDirectionFromToken(token string) (pb.OrderDirection, error) {
	return lookup(orderDirections, "direction", token)
}

func OrderTypeFromToken(token string) (pb.OrderType, error) {
	return lookup(orderTypes, "order_type", token)
}

func StopOrderDirectionFromToken(token string) (pb.StopOrderDirection, error) {
	return lookup(stopOrderDirections, "direction", token)
}

func StopOrderTypeFromToken(token string) (pb.StopOrderType, error) {
	return lookup(stopOrderTypes, "stop_order_type", token)
}

func StopOrderExpirationFromToken(token string) (pb.StopOrderExpirationType, error) {
	return lookup(stopOrderExpirationTypes, "expiration_type", token)
}

func OperationStateFromToken(token string) (pb.OperationState, error) {
	return lookup(operationStates, "state", token)
}

// IsStopLimit and IsGoodTillDate exist so the conditional-requirement checks
// read as domain rules rather than enum comparisons at the call sites.

func IsLimitOrder(t pb.OrderType) bool {
	return t == pb.OrderType_ORDER_TYPE_LIMIT
}

func IsStopLimit(t pb.StopOrderType) bool {
	return t == pb.StopOrderType_STOP_ORDER_TYPE_STOP_LIMIT
}

func IsGoodTillDate(t pb.StopOrderExpirationType) bool {
	return t == pb.StopOrderExpirationType_STOP_ORDER_EXPIRATION_TYPE_GOOD_TILL_DATE
}
