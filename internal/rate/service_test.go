package rate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fxconv/internal/adapters/source"
	"fxconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const refreshedDoc = `<Cube><Cube time="2024-01-16"><Cube currency="USD" rate="1.1000"/><Cube currency="GBP" rate="0.8600"/><Cube currency="JPY" rate="161.00"/></Cube></Cube>`

// switchingBuilder serves documents from a mutable primary source.
type switchingBuilder struct {
	primary *fakeSource
	backup  *fakeSource
}

func newSwitchingBuilder(body string) *switchingBuilder {
	return &switchingBuilder{
		primary: &fakeSource{name: "primary", body: body},
		backup:  &fakeSource{name: "backup", err: domain.ErrSourceUnavailable},
	}
}

func (b *switchingBuilder) build(ctx context.Context) (*Converter, error) {
	return NewConverter(ctx, WithPrimary(b.primary), WithBackup(b.backup))
}

func newTestService(t *testing.T) (*Service, *switchingBuilder) {
	t.Helper()
	b := newSwitchingBuilder(scenarioDoc)
	svc, err := NewService(context.Background(), b.build)
	require.NoError(t, err)
	return svc, b
}

func TestNewService_FailsWhenBuildFails(t *testing.T) {
	b := newSwitchingBuilder("")
	b.primary.err = errors.New("down")

	svc, err := NewService(context.Background(), b.build)
	require.Nil(t, svc)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestService_Queries(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Exchange(decimal.NewFromInt(5), "EUR", "USD")
	require.NoError(t, err)
	require.True(t, got.Equal(dec("5.475")))

	r, err := svc.CrossRate("USD", "EUR")
	require.NoError(t, err)
	require.Equal(t, "0.9132", r.StringFixed(4))

	require.Equal(t, []domain.Symbol{"EUR", "GBP", "USD"}, svc.Currencies(true))

	st := svc.Status()
	require.Equal(t, domain.Symbol("EUR"), st.Base)
	require.Equal(t, "primary", st.Source)
	require.Equal(t, 3, st.Entries)

	var sb strings.Builder
	require.NoError(t, svc.Render(&sb))
	require.True(t, strings.HasPrefix(sb.String(), "Base currency: EUR (rates as of 2024-01-15)"))
}

func TestService_SetBase(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SetBase("USD"))
	require.Equal(t, domain.Symbol("USD"), svc.Status().Base)

	require.ErrorIs(t, svc.SetBase("CHF"), domain.ErrUnknownCurrency)
	require.Equal(t, domain.Symbol("USD"), svc.Status().Base)
}

func TestService_Refresh_KeepsBase(t *testing.T) {
	svc, b := newTestService(t)
	require.NoError(t, svc.SetBase("USD"))

	b.primary.body = refreshedDoc
	st, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Symbol("USD"), st.Base)
	require.Equal(t, "2024-01-16", st.AsOf.Format("2006-01-02"))
	require.Equal(t, 4, st.Entries)

	jpy, err := svc.CrossRate("USD", "JPY")
	require.NoError(t, err)
	requireDecimalNear(t, dec("161").DivRound(dec("1.1"), divisionPrecision), jpy)
}

func TestService_Refresh_FailureKeepsPreviousTable(t *testing.T) {
	svc, b := newTestService(t)

	b.primary.body = `<Cube><Cube time="2024-01-16"><Cube currency="USD" rate="bad"/></Cube></Cube>`
	st, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, domain.ErrFormat)
	require.Equal(t, "2024-01-15", st.AsOf.Format("2006-01-02"))

	got, err := svc.Exchange(decimal.NewFromInt(5), "EUR", "USD")
	require.NoError(t, err)
	require.True(t, got.Equal(dec("5.475")))
}

func TestService_Refresh_BaseMissingFallsBackToAnchor(t *testing.T) {
	svc, b := newTestService(t)
	require.NoError(t, svc.SetBase("GBP"))

	b.primary.body = `<Cube><Cube time="2024-01-16"><Cube currency="USD" rate="1.1000"/></Cube></Cube>`
	st, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Symbol("EUR"), st.Base)
}

func TestService_ConcurrentAccess(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base := domain.Symbol("USD")
			if i%2 == 0 {
				base = "GBP"
			}
			for j := 0; j < 50; j++ {
				_ = svc.SetBase(base)
				_, err := svc.Exchange(decimal.NewFromInt(1), "EUR", "USD")
				require.NoError(t, err)
				_, err = svc.RatesTable(nil)
				require.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	rows, err := svc.RatesTable([]domain.Symbol{svc.Status().Base})
	require.NoError(t, err)
	require.Equal(t, "1.0000", rows[0].Display)
}

func TestService_Convert(t *testing.T) {
	svc, _ := newTestService(t)

	res, crossRate, err := svc.Convert(decimal.NewFromInt(5), "EUR", "USD")
	require.NoError(t, err)
	require.True(t, res.Equal(dec("5.475")))
	require.True(t, crossRate.Equal(dec("1.095")))

	_, _, err = svc.Convert(decimal.NewFromInt(5), "EUR", "CHF")
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestService_RatesWithStatus_SameTable(t *testing.T) {
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base := domain.Symbol("USD")
			if i%2 == 0 {
				base = "GBP"
			}
			for j := 0; j < 50; j++ {
				_ = svc.SetBase(base)
			}
		}(i)
	}
	for j := 0; j < 200; j++ {
		rows, st, err := svc.RatesWithStatus(nil)
		require.NoError(t, err)
		require.Len(t, rows, st.Entries)
		for _, row := range rows {
			if row.Symbol == st.Base {
				require.True(t, row.Rate.Equal(one), "base %s has rate %s", st.Base, row.Rate)
			}
		}
	}
	wg.Wait()
}

func TestService_Reload_BypassesDocumentCache(t *testing.T) {
	ctx := context.Background()
	upstream := &fakeSource{name: "primary", body: scenarioDoc}
	cached, err := source.NewCachedSource(upstream, 16, 5*time.Minute)
	require.NoError(t, err)
	defer cached.Close()
	backup := &fakeSource{name: "backup", err: domain.ErrSourceUnavailable}

	svc, err := NewService(ctx, func(ctx context.Context) (*Converter, error) {
		return NewConverter(ctx, WithPrimary(cached), WithBackup(backup))
	}, cached)
	require.NoError(t, err)
	require.Equal(t, 1, upstream.calls)

	upstream.body = refreshedDoc

	st, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "2024-01-15", st.AsOf.Format("2006-01-02"))
	require.Equal(t, 1, upstream.calls)

	st, err = svc.Reload(ctx)
	require.NoError(t, err)
	require.Equal(t, "2024-01-16", st.AsOf.Format("2006-01-02"))
	require.Equal(t, 2, upstream.calls)
}
