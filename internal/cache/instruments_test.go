package cache

import (
	"context"
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tinvest-mcp/internal/domain"
)

type stubListingClient struct {
	calls     int
	bondsFail int
}

func (s *stubListingClient) Shares(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.SharesResponse, error) {
	s.calls++
	return &pb.SharesResponse{Instruments: []*pb.Share{
		{Uid: "uid-sber", Name: "Sberbank", Ticker: "SBER", Currency: "rub", Lot: 10, Sector: "financial"},
		{Uid: "uid-gazp", Name: "Gazprom", Ticker: "GAZP", Currency: "rub", Lot: 10, Sector: "energy"},
	}}, nil
}

func (s *stubListingClient) Bonds(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.BondsResponse, error) {
	s.calls++
	if s.bondsFail > 0 {
		s.bondsFail--
		return nil, status.Error(codes.Unavailable, "bonds backend down")
	}
	return &pb.BondsResponse{Instruments: []*pb.Bond{
		{Uid: "uid-ofz", Name: "OFZ 26238", Ticker: "SU26238RMFS4", Currency: "rub", Lot: 1},
	}}, nil
}

func (s *stubListingClient) Etfs(ctx context.Context, in *pb.InstrumentsRequest, opts ...grpc.CallOption) (*pb.EtfsResponse, error) {
	s.calls++
	return &pb.EtfsResponse{Instruments: []*pb.Etf{
		{Uid: "uid-tmos", Name: "T-MOEX", Ticker: "TMOS", Currency: "rub", Lot: 1},
	}}, nil
}

func TestDirectoryInfo(t *testing.T) {
	client := &stubListingClient{}
	dir := NewDirectory(client)

	name, ticker := dir.Info(context.Background(), "uid-sber")
	assert.Equal(t, "Sberbank", name)
	assert.Equal(t, "SBER", ticker)

	name, ticker = dir.Info(context.Background(), "uid-nope")
	assert.Equal(t, UnknownName, name)
	assert.Equal(t, UnknownTicker, ticker)

	// Three listing calls total: the directory loads once.
	assert.Equal(t, 3, client.calls)
}

func TestDirectoryListingOrder(t *testing.T) {
	dir := NewDirectory(&stubListingClient{})

	shares, err := dir.Listing(context.Background(), KindShare)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "SBER", shares[0].Ticker)
	assert.Equal(t, "GAZP", shares[1].Ticker)
	assert.Equal(t, "share", shares[0].InstrumentType)

	bonds, err := dir.Listing(context.Background(), KindBond)
	require.NoError(t, err)
	require.Len(t, bonds, 1)
	assert.Equal(t, "bond", bonds[0].InstrumentType)
}

func TestDirectoryRetryAfterPartialLoad(t *testing.T) {
	client := &stubListingClient{bondsFail: 1}
	dir := NewDirectory(client)

	// First attempt dies on the bonds fetch; nothing must be kept from it.
	_, err := dir.Listing(context.Background(), KindShare)
	require.Error(t, err)
	assert.True(t, domain.IsUpstream(err))

	name, ticker := dir.Info(context.Background(), "uid-sber")
	require.Equal(t, "Sberbank", name)
	require.Equal(t, "SBER", ticker)

	shares, err := dir.Listing(context.Background(), KindShare)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "SBER", shares[0].Ticker)
	assert.Equal(t, "GAZP", shares[1].Ticker)

	bonds, err := dir.Listing(context.Background(), KindBond)
	require.NoError(t, err)
	require.Len(t, bonds, 1)
}
