package rate

import (
	"testing"
	"time"

	"fxconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testEntries() []domain.RateEntry {
	return []domain.RateEntry{
		{Symbol: "USD", Rate: dec("1.0950"), AsOf: testAsOf},
		{Symbol: "JPY", Rate: dec("160.28"), AsOf: testAsOf},
		{Symbol: "GBP", Rate: dec("0.8590"), AsOf: testAsOf},
		{Symbol: "IDR", Rate: dec("17063.41"), AsOf: testAsOf},
	}
}

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(testEntries(), testAsOf, "EUR")
	require.NoError(t, err)
	return tbl
}

func requireDecimalNear(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	tolerance := want.Abs().Mul(dec("0.000000000001"))
	require.True(t, want.Sub(got).Abs().LessThanOrEqual(tolerance), "want %s, got %s", want, got)
}

func TestNewTable_AnchorsOnDocumentBase(t *testing.T) {
	tbl := newTestTable(t)

	require.Equal(t, domain.Symbol("EUR"), tbl.Base())
	require.Equal(t, testAsOf, tbl.AsOf())
	require.Equal(t, 5, tbl.Len())

	r, err := tbl.Rate("EUR")
	require.NoError(t, err)
	require.True(t, r.Equal(decimal.NewFromInt(1)))

	// anchor is appended after document entries
	require.Equal(t, []domain.Symbol{"USD", "JPY", "GBP", "IDR", "EUR"}, tbl.Currencies(false))
	require.Equal(t, []domain.Symbol{"EUR", "GBP", "IDR", "JPY", "USD"}, tbl.Currencies(true))
}

func TestNewTable_DuplicateEntry(t *testing.T) {
	entries := append(testEntries(), domain.RateEntry{Symbol: "USD", Rate: dec("1.1"), AsOf: testAsOf})

	_, err := NewTable(entries, testAsOf, "EUR")
	require.ErrorIs(t, err, domain.ErrDuplicateEntry)

	var dupErr *domain.DuplicateEntryError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, domain.Symbol("USD"), dupErr.Symbol)
}

func TestNewTable_AmbiguousAnchor(t *testing.T) {
	entries := append(testEntries(), domain.RateEntry{Symbol: "EUR", Rate: dec("1.01"), AsOf: testAsOf})

	_, err := NewTable(entries, testAsOf, "EUR")
	require.ErrorIs(t, err, domain.ErrAmbiguousAnchor)
}

func TestNewTable_AnchorQuotedAtOne(t *testing.T) {
	entries := append(testEntries(), domain.RateEntry{Symbol: "EUR", Rate: dec("1.000"), AsOf: testAsOf})

	tbl, err := NewTable(entries, testAsOf, "EUR")
	require.NoError(t, err)
	require.Equal(t, 5, tbl.Len())
}

func TestNewTable_RejectsNonPositiveRate(t *testing.T) {
	entries := []domain.RateEntry{{Symbol: "USD", Rate: decimal.Zero, AsOf: testAsOf}}

	_, err := NewTable(entries, testAsOf, "EUR")
	require.ErrorIs(t, err, domain.ErrFormat)
}

func TestTable_Rate_Unknown(t *testing.T) {
	tbl := newTestTable(t)

	_, err := tbl.Rate("CHF")
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestTable_SetBase_Rebases(t *testing.T) {
	tbl := newTestTable(t)
	before := tbl.Clone()

	require.NoError(t, tbl.SetBase("USD"))
	require.Equal(t, domain.Symbol("USD"), tbl.Base())

	usd, err := tbl.Rate("USD")
	require.NoError(t, err)
	require.True(t, usd.Equal(decimal.NewFromInt(1)))

	oldUSD, _ := before.Rate("USD")
	for _, sym := range before.Currencies(false) {
		oldRate, _ := before.Rate(sym)
		newRate, rateErr := tbl.Rate(sym)
		require.NoError(t, rateErr)
		requireDecimalNear(t, oldRate.DivRound(oldUSD, divisionPrecision), newRate)
	}

	eur, _ := tbl.Rate("EUR")
	require.Equal(t, "0.9132", eur.StringFixed(4))
}

func TestTable_SetBase_RoundTrip(t *testing.T) {
	tbl := newTestTable(t)
	before := tbl.Clone()

	require.NoError(t, tbl.SetBase("JPY"))
	require.NoError(t, tbl.SetBase("IDR"))
	require.NoError(t, tbl.SetBase("EUR"))

	for _, sym := range before.Currencies(false) {
		want, _ := before.Rate(sym)
		got, err := tbl.Rate(sym)
		require.NoError(t, err)
		requireDecimalNear(t, want, got)
	}
	eur, _ := tbl.Rate("EUR")
	require.True(t, eur.Equal(decimal.NewFromInt(1)))
}

func TestTable_SetBase_SameBaseIsNoop(t *testing.T) {
	tbl := newTestTable(t)
	before := tbl.Clone()

	require.NoError(t, tbl.SetBase("EUR"))
	require.Equal(t, before.rates, tbl.rates)
}

func TestTable_SetBase_UnknownLeavesTableUnchanged(t *testing.T) {
	tbl := newTestTable(t)
	before := tbl.Clone()

	err := tbl.SetBase("CHF")
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
	require.Equal(t, domain.Symbol("EUR"), tbl.Base())
	require.Equal(t, before.rates, tbl.rates)
}

func TestTable_Clone_IsIndependent(t *testing.T) {
	tbl := newTestTable(t)
	c := tbl.Clone()

	require.NoError(t, c.SetBase("GBP"))
	require.Equal(t, domain.Symbol("EUR"), tbl.Base())
	r, _ := tbl.Rate("GBP")
	require.True(t, r.Equal(dec("0.859")))
}
