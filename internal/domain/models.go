package domain

import (
	"github.com/shopspring/decimal"
)

// MCP-serializable shapes returned by the tools. Money is decimal (exact),
// timestamps are ISO-8601 strings, enums are their upstream token strings.
// List order always mirrors the upstream response.

type PortfolioPosition struct {
	InstrumentID    string           `json:"instrument_id"`
	InstrumentType  string           `json:"instrument_type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	AveragePrice    decimal.Decimal  `json:"average_price"`
	CurrentPrice    decimal.Decimal  `json:"current_price"`
	ExpectedYield   decimal.Decimal  `json:"expected_yield"`
	Currency        string           `json:"currency"`
	Blocked         bool             `json:"blocked"`
	AccruedInterest *decimal.Decimal `json:"accrued_interest,omitempty"`
}

type Portfolio struct {
	AccountID         string              `json:"account_id"`
	Positions         []PortfolioPosition `json:"positions"`
	TotalValue        decimal.Decimal     `json:"total_portfolio_value"`
	TotalYieldPercent decimal.Decimal     `json:"total_yield_percentage"`
	DailyYield        decimal.Decimal     `json:"daily_yield"`
	DailyYieldPercent decimal.Decimal     `json:"daily_yield_percentage"`
}

type MoneyAmount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

type CashBalance struct {
	Money   []MoneyAmount `json:"money"`
	Blocked []MoneyAmount `json:"blocked"`
}

type Operation struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	Type            string           `json:"type"`
	TypeDescription string           `json:"type_description,omitempty"`
	InstrumentID    string           `json:"instrument_id,omitempty"`
	InstrumentType  string           `json:"instrument_type,omitempty"`
	Payment         decimal.Decimal  `json:"payment"`
	Currency        string           `json:"currency"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Quantity        int64            `json:"quantity"`
	QuantityRest    int64            `json:"quantity_rest"`
	State           string           `json:"state"`
}

type LastPrice struct {
	InstrumentID     string          `json:"instrument_id"`
	InstrumentName   string          `json:"instrument_name"`
	InstrumentTicker string          `json:"instrument_ticker"`
	Price            decimal.Decimal `json:"price"`
	Time             string          `json:"time"`
}

type Candle struct {
	Time       string          `json:"time"`
	Open       decimal.Decimal `json:"open"`
	High       decimal.Decimal `json:"high"`
	Low        decimal.Decimal `json:"low"`
	Close      decimal.Decimal `json:"close"`
	Volume     int64           `json:"volume"`
	IsComplete bool            `json:"is_complete"`
}

type CandleSeries struct {
	InstrumentID     string   `json:"instrument_id"`
	InstrumentName   string   `json:"instrument_name"`
	InstrumentTicker string   `json:"instrument_ticker"`
	Interval         string   `json:"interval"`
	Candles          []Candle `json:"candles"`
}

type OrderBookItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type OrderBook struct {
	InstrumentID string           `json:"instrument_id"`
	Depth        int32            `json:"depth"`
	Bids         []OrderBookItem  `json:"bids"`
	Asks         []OrderBookItem  `json:"asks"`
	LastPrice    *decimal.Decimal `json:"last_price,omitempty"`
	ClosePrice   *decimal.Decimal `json:"close_price,omitempty"`
	LimitUp      *decimal.Decimal `json:"limit_up,omitempty"`
	LimitDown    *decimal.Decimal `json:"limit_down,omitempty"`
	Time         string           `json:"time"`
}

type TradingStatus struct {
	InstrumentID         string `json:"instrument_id"`
	InstrumentName       string `json:"instrument_name"`
	InstrumentTicker     string `json:"instrument_ticker"`
	TradingStatus        string `json:"trading_status"`
	LimitOrderAvailable  bool   `json:"limit_order_available"`
	MarketOrderAvailable bool   `json:"market_order_available"`
}

type TradingDay struct {
	Date               string `json:"date"`
	IsTradingDay       bool   `json:"is_trading_day"`
	StartTime          string `json:"start_time,omitempty"`
	EndTime            string `json:"end_time,omitempty"`
	PremarketStartTime string `json:"premarket_start_time,omitempty"`
	PremarketEndTime   string `json:"premarket_end_time,omitempty"`
	EveningStartTime   string `json:"evening_start_time,omitempty"`
	EveningEndTime     string `json:"evening_end_time,omitempty"`
	ClearingStartTime  string `json:"clearing_start_time,omitempty"`
	ClearingEndTime    string `json:"clearing_end_time,omitempty"`
}

type TradingSchedule struct {
	Exchange string       `json:"exchange"`
	Days     []TradingDay `json:"days"`
}

type Order struct {
	OrderID       string           `json:"order_id"`
	InstrumentID  string           `json:"instrument_id"`
	Direction     string           `json:"direction"`
	OrderType     string           `json:"order_type"`
	Status        string           `json:"status"`
	LotsRequested int64            `json:"lots_requested"`
	LotsExecuted  int64            `json:"lots_executed"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	OrderDate     string           `json:"order_date,omitempty"`
}

type OrderConfirmation struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Direction string `json:"direction"`
	Message   string `json:"message,omitempty"`
}

type CancelConfirmation struct {
	Success bool   `json:"success"`
	Time    string `json:"time,omitempty"`
}

type StopOrder struct {
	StopOrderID    string           `json:"stop_order_id"`
	InstrumentID   string           `json:"instrument_id"`
	Direction      string           `json:"direction"`
	StopOrderType  string           `json:"stop_order_type"`
	Lots           int64            `json:"lots"`
	StopPrice      decimal.Decimal  `json:"stop_price"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	CreateDate     string           `json:"create_date,omitempty"`
	ActivationTime string           `json:"activation_date_time,omitempty"`
	ExpirationTime string           `json:"expiration_time,omitempty"`
}

type StopOrderConfirmation struct {
	StopOrderID    string `json:"stop_order_id"`
	OrderRequestID string `json:"order_request_id,omitempty"`
}

type Instrument struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker"`
	Currency       string `json:"currency,omitempty"`
	InstrumentType string `json:"instrument_type"`
	Lot            int32  `json:"lot,omitempty"`
	CountryOfRisk  string `json:"country_of_risk,omitempty"`
	Sector         string `json:"sector,omitempty"`
}

type InstrumentPage struct {
	Instruments []Instrument `json:"instruments"`
	Total       int          `json:"total"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
	HasMore     bool         `json:"has_more"`
}
