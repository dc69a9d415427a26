package domain

import (
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const nanoFactor = 1_000_000_000

// newDecimal builds units + nano/1e9 through integer coefficients only, so a
// value distinguishable at the nano scale survives the conversion exactly.
func newDecimal(units int64, nano int32) decimal.Decimal {
	if units == 0 && nano == 0 {
		return decimal.Zero
	}
	return decimal.New(units*nanoFactor+int64(nano), -9)
}

func QuotationToDecimal(q *pb.Quotation) decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	return newDecimal(q.Units, q.Nano)
}

func MoneyToDecimal(m *pb.MoneyValue) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return newDecimal(m.Units, m.Nano)
}

// MoneyToDecimalPtr keeps the present/absent distinction for optional prices.
func MoneyToDecimalPtr(m *pb.MoneyValue) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := newDecimal(m.Units, m.Nano)
	return &d
}

func QuotationToDecimalPtr(q *pb.Quotation) *decimal.Decimal {
	if q == nil {
		return nil
	}
	d := newDecimal(q.Units, q.Nano)
	return &d
}

var one = decimal.NewFromInt(1)

func DecimalToQuotation(d decimal.Decimal) *pb.Quotation {
	nano := d.Mod(one).Mul(decimal.New(nanoFactor, 0)).IntPart()
	return &pb.Quotation{
		Units: d.IntPart(),
		Nano:  int32(nano),
	}
}

// ParsePrice accepts the decimal string form of a price ("15.475"). Binary
// floating point never participates.
func ParsePrice(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, Validationf(field, "not a decimal number: %q", raw)
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, Validationf(field, "must be positive, got %s", d)
	}
	// The wire Quotation resolves to nine fractional digits; anything finer
	// would be truncated silently, so it is rejected instead.
	if !d.Equal(d.Truncate(9)) {
		return decimal.Decimal{}, Validationf(field, "more than 9 decimal places: %q", raw)
	}
	return d, nil
}

// ParseTime parses an ISO-8601 / RFC 3339 date-time string.
func ParseTime(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, Validationf(field, "not an ISO-8601 date-time: %q", raw)
	}
	return t, nil
}

func TimestampToISO(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return ""
	}
	return ts.AsTime().UTC().Format(time.RFC3339)
}
