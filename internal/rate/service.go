package rate

import (
	"context"
	"io"
	"sync"
	"time"

	"fxconv/internal/domain"
	"fxconv/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Builder produces a freshly loaded Converter.
type Builder func(ctx context.Context) (*Converter, error)

// Status describes the live table.
type Status struct {
	Base       domain.Symbol `json:"base"`
	AsOf       time.Time     `json:"as_of"`
	Source     string        `json:"source"`
	FromBackup bool          `json:"from_backup"`
	Entries    int           `json:"entries"`
}

// Invalidator drops cached source data ahead of a forced reload.
type Invalidator interface {
	Invalidate()
}

// Service guards a Converter for concurrent callers. Refresh replaces the
// converter only after a complete successful load.
type Service struct {
	mu          sync.RWMutex
	conv        *Converter
	build       Builder
	invalidates []Invalidator
}

// NewService loads the first table. Invalidators are flushed by Reload.
func NewService(ctx context.Context, build Builder, invalidates ...Invalidator) (*Service, error) {
	conv, err := build(ctx)
	observeLoad(conv, err)
	if err != nil {
		return nil, err
	}
	return &Service{conv: conv, build: build, invalidates: invalidates}, nil
}

func (s *Service) Exchange(amount decimal.Decimal, from, to domain.Symbol) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.conv.Exchange(amount, from, to)
	metrics.ObserveConversion(err)
	return res, err
}

func (s *Service) CrossRate(from, to domain.Symbol) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.conv.CrossRate(from, to)
	metrics.ObserveConversion(err)
	return res, err
}

// Convert returns the converted amount together with the cross rate used,
// both read from the same table.
func (s *Service) Convert(amount decimal.Decimal, from, to domain.Symbol) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := s.conv.Exchange(amount, from, to)
	if err != nil {
		metrics.ObserveConversion(err)
		return decimal.Zero, decimal.Zero, err
	}
	crossRate, err := s.conv.CrossRate(from, to)
	metrics.ObserveConversion(err)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return res, crossRate, nil
}

func (s *Service) RatesTable(symbols []domain.Symbol) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.RatesTable(symbols)
}

// RatesWithStatus returns rows and the status of the table they came from.
func (s *Service) RatesWithStatus(symbols []domain.Symbol) ([]Row, Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.conv.RatesTable(symbols)
	if err != nil {
		return nil, Status{}, err
	}
	return rows, statusOf(s.conv), nil
}

func (s *Service) Currencies(sorted bool) []domain.Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Currencies(sorted)
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return statusOf(s.conv)
}

func (s *Service) SetBase(sym domain.Symbol) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sym == s.conv.Base() {
		return nil
	}
	if err := s.conv.SetBase(sym); err != nil {
		return err
	}
	metrics.RebasesTotal.Inc()
	return nil
}

func (s *Service) Render(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conv.Render(w)
}

// Refresh loads a new table and carries the current base over to it. On
// failure the previous table stays in place.
func (s *Service) Refresh(ctx context.Context) (Status, error) {
	next, err := s.build(ctx)
	observeLoad(next, err)
	if err != nil {
		return s.Status(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.conv.Base()
	if next.Contains(base) {
		if err = next.SetBase(base); err != nil {
			return statusOf(s.conv), err
		}
	} else {
		logrus.WithField("base", base).Warn("Base currency missing from refreshed table, keeping document anchor")
	}
	s.conv = next
	return statusOf(next), nil
}

// Reload is Refresh with every cached source document dropped first.
func (s *Service) Reload(ctx context.Context) (Status, error) {
	for _, inv := range s.invalidates {
		inv.Invalidate()
	}
	return s.Refresh(ctx)
}

func statusOf(c *Converter) Status {
	return Status{
		Base:       c.Base(),
		AsOf:       c.AsOf(),
		Source:     c.Source(),
		FromBackup: c.FromBackup(),
		Entries:    c.Len(),
	}
}

func observeLoad(c *Converter, err error) {
	if err != nil {
		metrics.SourceLoadsTotal.WithLabelValues("any", "failure").Inc()
		return
	}
	kind := "primary"
	if c.FromBackup() {
		kind = "backup"
	}
	metrics.SourceLoadsTotal.WithLabelValues(kind, "success").Inc()
	metrics.TableEntries.Set(float64(c.Len()))
	metrics.TableAsOfSeconds.Set(float64(c.AsOf().Unix()))
}
