// Package cache implements an in-process instrument directory. The full
// share, bond and etf listings are fetched once and then serve two needs:
// resolving a uid to its name and ticker when enriching market-data
// responses, and backing the paginated listing tools.
package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"

	"tinvest-mcp/internal/domain"
)

const (
	UnknownName   = "Unknown"
	UnknownTicker = "UNKNOWN"
)

type Kind string

const (
	KindShare Kind = "share"
	KindBond  Kind = "bond"
	KindETF   Kind = "etf"
)

// ListingClient is the slice of the instruments service the directory needs.
type ListingClient interface {
	Shares(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.SharesResponse, error)
	Bonds(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.BondsResponse, error)
	Etfs(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.EtfsResponse, error)
}

type Directory struct {
	mu       sync.Mutex
	loaded   bool
	byUID    map[string]domain.Instrument
	listings map[Kind][]domain.Instrument
	client   ListingClient
}

func NewDirectory(client ListingClient) *Directory {
	return &Directory{
		byUID:    make(map[string]domain.Instrument),
		listings: make(map[Kind][]domain.Instrument),
		client:   client,
	}
}

// ensureLoaded fetches all three listings before committing anything, so a
// failed attempt leaves the directory empty and a retry cannot duplicate
// instruments already appended.
func (d *Directory) ensureLoaded(ctx context.Context) error {
	if d.loaded {
		return nil
	}
	log.Info().Msg("loading instruments into cache")

	req := &pb.InstrumentsRequest{InstrumentStatus: pb.InstrumentStatus_INSTRUMENT_STATUS_BASE}

	byUID := make(map[string]domain.Instrument)
	listings := make(map[Kind][]domain.Instrument)
	add := func(kind Kind, in domain.Instrument) {
		byUID[in.UID] = in
		listings[kind] = append(listings[kind], in)
	}

	shares, err := d.client.Shares(ctx, req)
	if err != nil {
		return domain.Upstream("list shares", err)
	}
	for _, s := range shares.Instruments {
		add(KindShare, domain.Instrument{
			UID:            s.Uid,
			Name:           s.Name,
			Ticker:         s.Ticker,
			Currency:       s.Currency,
			InstrumentType: string(KindShare),
			Lot:            s.Lot,
			CountryOfRisk:  s.CountryOfRisk,
			Sector:         s.Sector,
		})
	}

	bonds, err := d.client.Bonds(ctx, req)
	if err != nil {
		return domain.Upstream("list bonds", err)
	}
	for _, b := range bonds.Instruments {
		add(KindBond, domain.Instrument{
			UID:            b.Uid,
			Name:           b.Name,
			Ticker:         b.Ticker,
			Currency:       b.Currency,
			InstrumentType: string(KindBond),
			Lot:            b.Lot,
			CountryOfRisk:  b.CountryOfRisk,
		})
	}

	etfs, err := d.client.Etfs(ctx, req)
	if err != nil {
		return domain.Upstream("list etfs", err)
	}
	for _, e := range etfs.Instruments {
		add(KindETF, domain.Instrument{
			UID:            e.Uid,
			Name:           e.Name,
			Ticker:         e.Ticker,
			Currency:       e.Currency,
			InstrumentType: string(KindETF),
			Lot:            e.Lot,
			CountryOfRisk:  e.CountryOfRisk,
		})
	}

	d.byUID = byUID
	d.listings = listings
	d.loaded = true
	log.Info().Int("instruments", len(d.byUID)).Msg("instrument cache loaded")
	return nil
}

// Info returns name and ticker for a uid, or the Unknown placeholders when the
// uid is not in the directory. Enrichment is best effort: a lookup miss or a
// failed load never fails the caller's request.
func (d *Directory) Info(ctx context.Context, uid string) (name, ticker string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureLoaded(ctx); err != nil {
		log.Warn().Err(err).Msg("instrument cache load failed")
		return UnknownName, UnknownTicker
	}
	if in, ok := d.byUID[uid]; ok {
		return in.Name, in.Ticker
	}
	log.Warn().Str("uid", uid).Msg("instrument not found in cache")
	return UnknownName, UnknownTicker
}

// Listing returns the cached instruments of one kind in upstream order.
func (d *Directory) Listing(ctx context.Context, kind Kind) ([]domain.Instrument, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return d.listings[kind], nil
}
