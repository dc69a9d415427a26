package service

import (
	"context"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"

	"tinvest-mcp/internal/cache"
	"tinvest-mcp/internal/domain"
)

const (
	defaultListingLimit = 10
	maxListingLimit     = 1000
)

type instrumentsClient interface {
	FindInstrument(ctx context.Context, in *pb.FindInstrumentRequest, opts ...grpc.CallOption) (*pb.FindInstrumentResponse, error)
	InstrumentBy(ctx context.Context, in *pb.InstrumentRequest, opts ...grpc.CallOption) (*pb.InstrumentResponse, error)
}

type listingProvider interface {
	Listing(ctx context.Context, kind cache.Kind) ([]domain.Instrument, error)
}

// Instruments serves reference data: search, lookup by uid and the paginated
// share/bond/etf listings backed by the directory cache.
type Instruments struct {
	client    instrumentsClient
	directory listingProvider
}

func NewInstruments(client instrumentsClient, directory listingProvider) *Instruments {
	return &Instruments{client: client, directory: directory}
}

func (s *Instruments) FindInstrument(ctx context.Context, query string) ([]domain.Instrument, error) {
	if query == "" {
		return nil, domain.Validationf("query", "is required")
	}

	resp, err := s.client.FindInstrument(ctx, &pb.FindInstrumentRequest{Query: query})
	if err != nil {
		return nil, domain.Upstream("find instrument", err)
	}

	out := make([]domain.Instrument, 0, len(resp.Instruments))
	for _, in := range resp.Instruments {
		out = append(out, domain.Instrument{
			UID:            in.Uid,
			Name:           in.Name,
			Ticker:         in.Ticker,
			InstrumentType: in.InstrumentType,
		})
	}
	return out, nil
}

func (s *Instruments) GetInstrumentByUID(ctx context.Context, uid string) (*domain.Instrument, error) {
	if uid == "" {
		return nil, domain.Validationf("uid", "is required")
	}

	resp, err := s.client.InstrumentBy(ctx, &pb.InstrumentRequest{
		IdType: pb.InstrumentIdType_INSTRUMENT_ID_TYPE_UID,
		Id:     uid,
	})
	if err != nil {
		return nil, domain.Upstream("get instrument by uid", err)
	}

	in := resp.Instrument
	return &domain.Instrument{
		UID:            in.Uid,
		Name:           in.Name,
		Ticker:         in.Ticker,
		Currency:       in.Currency,
		InstrumentType: in.InstrumentType,
		Lot:            in.Lot,
		CountryOfRisk:  in.CountryOfRisk,
	}, nil
}

type ListingQuery struct {
	Limit  int `json:"limit" validate:"gte=0"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (s *Instruments) GetShares(ctx context.Context, q ListingQuery) (*domain.InstrumentPage, error) {
	return s.page(ctx, cache.KindShare, q)
}

func (s *Instruments) GetBonds(ctx context.Context, q ListingQuery) (*domain.InstrumentPage, error) {
	return s.page(ctx, cache.KindBond, q)
}

func (s *Instruments) GetETFs(ctx context.Context, q ListingQuery) (*domain.InstrumentPage, error) {
	return s.page(ctx, cache.KindETF, q)
}

func (s *Instruments) page(ctx context.Context, kind cache.Kind, q ListingQuery) (*domain.InstrumentPage, error) {
	if err := checkStruct(q); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultListingLimit
	}
	if limit > maxListingLimit {
		limit = maxListingLimit
	}

	all, err := s.directory.Listing(ctx, kind)
	if err != nil {
		return nil, err
	}

	total := len(all)
	start := q.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]domain.Instrument, end-start)
	copy(page, all[start:end])

	return &domain.InstrumentPage{
		Instruments: page,
		Total:       total,
		Limit:       limit,
		Offset:      q.Offset,
		HasMore:     end < total,
	}, nil
}
