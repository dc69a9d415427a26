package service

import (
	"context"
	"fmt"
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"tinvest-mcp/internal/cache"
	"tinvest-mcp/internal/domain"
)

type instrumentsStub struct{}

func (instrumentsStub) FindInstrument(_ context.Context, in *pb.FindInstrumentRequest, _ ...grpc.CallOption) (*pb.FindInstrumentResponse, error) {
	return &pb.FindInstrumentResponse{Instruments: []*pb.InstrumentShort{{
		Uid:            "uid-1",
		Name:           "Sber",
		Ticker:         "SBER",
		InstrumentType: "share",
	}}}, nil
}

func (instrumentsStub) InstrumentBy(_ context.Context, in *pb.InstrumentRequest, _ ...grpc.CallOption) (*pb.InstrumentResponse, error) {
	return &pb.InstrumentResponse{Instrument: &pb.Instrument{
		Uid:            in.Id,
		Name:           "Sber",
		Ticker:         "SBER",
		Currency:       "rub",
		InstrumentType: "share",
		Lot:            10,
		CountryOfRisk:  "RU",
	}}, nil
}

type listingStub struct {
	n int
}

func (s listingStub) Listing(_ context.Context, kind cache.Kind) ([]domain.Instrument, error) {
	out := make([]domain.Instrument, s.n)
	for i := range out {
		out[i] = domain.Instrument{
			UID:            fmt.Sprintf("%s-%d", kind, i),
			InstrumentType: string(kind),
		}
	}
	return out, nil
}

func TestFindInstrument(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{})

	found, err := svc.FindInstrument(context.Background(), "sber")

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SBER", found[0].Ticker)
}

func TestFindInstrument_RequiresQuery(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{})

	_, err := svc.FindInstrument(context.Background(), "")

	require.True(t, domain.IsValidation(err))
}

func TestGetInstrumentByUID(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{})

	in, err := svc.GetInstrumentByUID(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", in.UID)
	assert.Equal(t, int32(10), in.Lot)
	assert.Equal(t, "RU", in.CountryOfRisk)
}

func TestGetShares_PaginationDefaults(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{n: 25})

	page, err := svc.GetShares(context.Background(), ListingQuery{})

	require.NoError(t, err)
	assert.Len(t, page.Instruments, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.True(t, page.HasMore)
	assert.Equal(t, "share-0", page.Instruments[0].UID)
}

func TestGetShares_LastPage(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{n: 25})

	page, err := svc.GetShares(context.Background(), ListingQuery{Limit: 10, Offset: 20})

	require.NoError(t, err)
	assert.Len(t, page.Instruments, 5)
	assert.False(t, page.HasMore)
	assert.Equal(t, "share-20", page.Instruments[0].UID)
}

func TestGetBonds_OffsetBeyondEnd(t *testing.T) {
	svc := NewInstruments(instrumentsStub{}, listingStub{n: 3})

	page, err := svc.GetBonds(context.Background(), ListingQuery{Offset: 100})

	require.NoError(t, err)
	assert.Empty(t, page.Instruments)
	assert.False(t, page.HasMore)
	assert.Equal(t, 3, page.Total)
}
