package service

import (
	"context"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"tinvest-mcp/internal/domain"
)

const (
	defaultOrderBookDepth = 10
	maxOrderBookDepth     = 50

	defaultExchange = "MOEX"
)

type marketDataClient interface {
	GetCandles(ctx context.Context, in *pb.GetCandlesRequest, opts ...grpc.CallOption) (*pb.GetCandlesResponse, error)
	GetLastPrices(ctx context.Context, in *pb.GetLastPricesRequest, opts ...grpc.CallOption) (*pb.GetLastPricesResponse, error)
	GetOrderBook(ctx context.Context, in *pb.GetOrderBookRequest, opts ...grpc.CallOption) (*pb.GetOrderBookResponse, error)
	GetTradingStatus(ctx context.Context, in *pb.GetTradingStatusRequest, opts ...grpc.CallOption) (*pb.GetTradingStatusResponse, error)
}

type schedulesClient interface {
	TradingSchedules(ctx context.Context, in *pb.TradingSchedulesRequest, opts ...grpc.CallOption) (*pb.TradingSchedulesResponse, error)
}

// MarketData serves the read-only quote endpoints. Schedules live on the
// instruments service upstream, hence the second client.
type MarketData struct {
	client    marketDataClient
	schedules schedulesClient
	directory infoProvider
	now       func() time.Time
}

func NewMarketData(client marketDataClient, schedules schedulesClient, directory infoProvider) *MarketData {
	return &MarketData{
		client:    client,
		schedules: schedules,
		directory: directory,
		now:       time.Now,
	}
}

type LastPricesQuery struct {
	InstrumentUIDs []string `json:"instrument_uids" validate:"required,min=1"`
}

func (s *MarketData) GetLastPrices(ctx context.Context, q LastPricesQuery) ([]domain.LastPrice, error) {
	if err := checkStruct(q); err != nil {
		return nil, err
	}

	resp, err := s.client.GetLastPrices(ctx, &pb.GetLastPricesRequest{InstrumentId: q.InstrumentUIDs})
	if err != nil {
		return nil, domain.Upstream("get last prices", err)
	}

	out := make([]domain.LastPrice, 0, len(resp.LastPrices))
	for _, lp := range resp.LastPrices {
		name, ticker := s.directory.Info(ctx, lp.InstrumentUid)
		out = append(out, domain.LastPrice{
			InstrumentID:     lp.InstrumentUid,
			InstrumentName:   name,
			InstrumentTicker: ticker,
			Price:            domain.QuotationToDecimal(lp.Price),
			Time:             domain.TimestampToISO(lp.Time),
		})
	}
	return out, nil
}

type CandlesQuery struct {
	InstrumentUID string `json:"instrument_uid" validate:"required"`
	FromDate      string `json:"from_date" validate:"required"`
	ToDate        string `json:"to_date"`
	Interval      string `json:"interval"`
}

func (s *MarketData) GetCandles(ctx context.Context, q CandlesQuery) (*domain.CandleSeries, error) {
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

	token := q.Interval
	if token == "" {
		token = "CANDLE_INTERVAL_1_MIN"
	}
	interval, err := domain.CandleIntervalFromToken(token)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetCandles(ctx, &pb.GetCandlesRequest{
		From:         timestamppb.New(from),
		To:           timestamppb.New(to),
		Interval:     interval,
		InstrumentId: q.InstrumentUID,
	})
	if err != nil {
		return nil, domain.Upstream("get candles", err)
	}

	candles := make([]domain.Candle, 0, len(resp.Candles))
	for _, c := range resp.Candles {
		candles = append(candles, domain.Candle{
			Time:       domain.TimestampToISO(c.Time),
			Open:       domain.QuotationToDecimal(c.Open),
			High:       domain.QuotationToDecimal(c.High),
			Low:        domain.QuotationToDecimal(c.Low),
			Close:      domain.QuotationToDecimal(c.Close),
			Volume:     c.Volume,
			IsComplete: c.IsComplete,
		})
	}

	name, ticker := s.directory.Info(ctx, q.InstrumentUID)
	return &domain.CandleSeries{
		InstrumentID:     q.InstrumentUID,
		InstrumentName:   name,
		InstrumentTicker: ticker,
		Interval:         token,
		Candles:          candles,
	}, nil
}

type OrderBookQuery struct {
	InstrumentUID string `json:"instrument_uid" validate:"required"`
	Depth         int32  `json:"depth" validate:"gte=0"`
}

func (s *MarketData) GetOrderBook(ctx context.Context, q OrderBookQuery) (*domain.OrderBook, error) {
	if err := checkStruct(q); err != nil {
		return nil, err
	}

	depth := q.Depth
	if depth == 0 {
		depth = defaultOrderBookDepth
	}
	if depth > maxOrderBookDepth {
		depth = maxOrderBookDepth
	}

	resp, err := s.client.GetOrderBook(ctx, &pb.GetOrderBookRequest{
		Depth:        depth,
		InstrumentId: q.InstrumentUID,
	})
	if err != nil {
		return nil, domain.Upstream("get order book", err)
	}

	return &domain.OrderBook{
		InstrumentID: resp.InstrumentUid,
		Depth:        resp.Depth,
		Bids:         adaptOrderBookItems(resp.Bids),
		Asks:         adaptOrderBookItems(resp.Asks),
		LastPrice:    domain.QuotationToDecimalPtr(resp.LastPrice),
		ClosePrice:   domain.QuotationToDecimalPtr(resp.ClosePrice),
		LimitUp:      domain.QuotationToDecimalPtr(resp.LimitUp),
		LimitDown:    domain.QuotationToDecimalPtr(resp.LimitDown),
		Time:         domain.TimestampToISO(resp.OrderbookTs),
	}, nil
}

func adaptOrderBookItems(orders []*pb.Order) []domain.OrderBookItem {
	out := make([]domain.OrderBookItem, 0, len(orders))
	for _, o := range orders {
		out = append(out, domain.OrderBookItem{
			Price:    domain.QuotationToDecimal(o.Price),
			Quantity: o.Quantity,
		})
	}
	return out
}

func (s *MarketData) GetTradingStatus(ctx context.Context, instrumentUID string) (*domain.TradingStatus, error) {
	if instrumentUID == "" {
		return nil, domain.Validationf("instrument_uid", "is required")
	}

	resp, err := s.client.GetTradingStatus(ctx, &pb.GetTradingStatusRequest{InstrumentId: instrumentUID})
	if err != nil {
		return nil, domain.Upstream("get trading status", err)
	}

	name, ticker := s.directory.Info(ctx, resp.InstrumentUid)
	return &domain.TradingStatus{
		InstrumentID:         resp.InstrumentUid,
		InstrumentName:       name,
		InstrumentTicker:     ticker,
		TradingStatus:        resp.TradingStatus.String(),
		LimitOrderAvailable:  resp.LimitOrderAvailableFlag,
		MarketOrderAvailable: resp.MarketOrderAvailableFlag,
	}, nil
}

type SchedulesQuery struct {
	Exchange string `json:"exchange"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

func (s *MarketData) GetTradingSchedules(ctx context.Context, q SchedulesQuery) ([]domain.TradingSchedule, error) {
	exchange := q.Exchange
	if exchange == "" {
		exchange = defaultExchange
	}

	from := s.now().UTC()
	var err error
	if q.FromDate != "" {
		if from, err = domain.ParseTime("from_date", q.FromDate); err != nil {
			return nil, err
		}
	}
	to := from
	if q.ToDate != "" {
		if to, err = domain.ParseTime("to_date", q.ToDate); err != nil {
			return nil, err
		}
	}

	resp, err := s.schedules.TradingSchedules(ctx, &pb.TradingSchedulesRequest{
		Exchange: exchange,
		From:     timestamppb.New(from),
		To:       timestamppb.New(to),
	})
	if err != nil {
		return nil, domain.Upstream("get trading schedules", err)
	}

	out := make([]domain.TradingSchedule, 0, len(resp.Exchanges))
	for _, ex := range resp.Exchanges {
		days := make([]domain.TradingDay, 0, len(ex.Days))
		for _, d := range ex.Days {
			days = append(days, domain.TradingDay{
				Date:               domain.TimestampToISO(d.Date),
				IsTradingDay:       d.IsTradingDay,
				StartTime:          domain.TimestampToISO(d.StartTime),
				EndTime:            domain.TimestampToISO(d.EndTime),
				PremarketStartTime: domain.TimestampToISO(d.PremarketStartTime),
				PremarketEndTime:   domain.TimestampToISO(d.PremarketEndTime),
				EveningStartTime:   domain.TimestampToISO(d.EveningStartTime),
				EveningEndTime:     domain.TimestampToISO(d.EveningEndTime),
				ClearingStartTime:  domain.TimestampToISO(d.ClearingStartTime),
				ClearingEndTime:    domain.TimestampToISO(d.ClearingEndTime),
			})
		}
		out = append(out, domain.TradingSchedule{
			Exchange: ex.Exchange,
			Days:     days,
		})
	}
	return out, nil
}
