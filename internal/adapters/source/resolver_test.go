package source

import (
	"context"
	"errors"
	"testing"

	"fxconv/internal/adapters/ecb"
	"fxconv/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	primaryDoc = `<Cube><Cube time="2024-01-15"><Cube currency="USD" rate="1.0950"/></Cube></Cube>`
	backupDoc  = `<Cube><Cube time="2024-01-12"><Cube currency="USD" rate="1.0900"/></Cube></Cube>`
)

func newMockSource(name string) *MockSource {
	m := new(MockSource)
	m.On("Name").Return(name)
	return m
}

func TestResolver_UsesPrimary(t *testing.T) {
	primary := newMockSource("primary")
	backup := newMockSource("backup")
	primary.On("Fetch", mock.Anything).Return([]byte(primaryDoc), nil).Once()

	res, err := NewResolver(primary, backup, ecb.NewParser(domain.ISO4217())).Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "primary", res.Source)
	require.False(t, res.Fallback)
	require.Equal(t, "2024-01-15", res.Document.AsOf.Format("2006-01-02"))
	backup.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestResolver_FallsBackOnFetchError(t *testing.T) {
	primary := newMockSource("primary")
	backup := newMockSource("backup")
	primary.On("Fetch", mock.Anything).Return(nil, domain.ErrSourceUnavailable).Once()
	backup.On("Fetch", mock.Anything).Return([]byte(backupDoc), nil).Once()

	res, err := NewResolver(primary, backup, ecb.NewParser(domain.ISO4217())).Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "backup", res.Source)
	require.True(t, res.Fallback)
	require.Equal(t, "2024-01-12", res.Document.AsOf.Format("2006-01-02"))
}

func TestResolver_FallsBackOnPrimaryFormatError(t *testing.T) {
	primary := newMockSource("primary")
	backup := newMockSource("backup")
	primary.On("Fetch", mock.Anything).Return([]byte(`<Cube><Cube time="2024-01-15"><Cube currency="USD" rate="x"/></Cube></Cube>`), nil).Once()
	backup.On("Fetch", mock.Anything).Return([]byte(backupDoc), nil).Once()

	res, err := NewResolver(primary, backup, ecb.NewParser(domain.ISO4217())).Resolve(context.Background())
	require.NoError(t, err)
	require.True(t, res.Fallback)
}

func TestResolver_BothFail(t *testing.T) {
	primary := newMockSource("primary")
	backup := newMockSource("backup")
	netErr := errors.New("dial tcp: connection refused")
	primary.On("Fetch", mock.Anything).Return(nil, netErr).Once()
	backup.On("Fetch", mock.Anything).Return([]byte(`<Cube><Cube time="2024-01-15"><Cube currency="USD" rate="x"/></Cube></Cube>`), nil).Once()

	_, err := NewResolver(primary, backup, ecb.NewParser(domain.ISO4217())).Resolve(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, netErr)
	require.ErrorIs(t, err, domain.ErrFormat)

	var srcErr *domain.SourceUnavailableError
	require.ErrorAs(t, err, &srcErr)
	require.Equal(t, netErr, srcErr.Primary)
}

func TestResolver_NoBackup(t *testing.T) {
	primary := newMockSource("primary")
	primary.On("Fetch", mock.Anything).Return(nil, domain.ErrSourceUnavailable).Once()

	_, err := NewResolver(primary, nil, ecb.NewParser(domain.ISO4217())).Resolve(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFailureKind(t *testing.T) {
	require.Equal(t, "format", failureKind(&domain.FormatError{Field: "rate"}))
	require.Equal(t, "timeout", failureKind(context.DeadlineExceeded))
	require.Equal(t, "fetch", failureKind(errors.New("boom")))
}
