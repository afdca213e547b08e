package rate

import (
	"maps"
	"slices"
	"time"

	"fxconv/internal/domain"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// divisionPrecision is the number of fractional digits kept by every rate
// division, enough to keep repeated rebases of small rates stable.
const divisionPrecision = 28

// Table maps each known currency to the number of its units bought by one
// unit of the base currency. The base always maps to exactly 1.
type Table struct {
	rates map[domain.Symbol]decimal.Decimal
	order []domain.Symbol
	asOf  time.Time
	base  domain.Symbol
}

// NewTable builds a table from parsed entries anchored on anchor. The anchor
// is appended with rate 1 unless the document already quotes it at 1.
func NewTable(entries []domain.RateEntry, asOf time.Time, anchor domain.Symbol) (*Table, error) {
	t := &Table{
		rates: make(map[domain.Symbol]decimal.Decimal, len(entries)+1),
		order: make([]domain.Symbol, 0, len(entries)+1),
		asOf:  asOf,
		base:  anchor,
	}

	for _, e := range entries {
		if _, ok := t.rates[e.Symbol]; ok {
			return nil, &domain.DuplicateEntryError{Symbol: e.Symbol}
		}
		if e.Rate.Sign() <= 0 {
			return nil, &domain.FormatError{Field: "rate", Value: e.Rate.String()}
		}
		if e.Symbol == anchor && !e.Rate.Equal(one) {
			return nil, &domain.AmbiguousAnchorError{Symbol: anchor, Rate: e.Rate}
		}
		t.rates[e.Symbol] = e.Rate
		t.order = append(t.order, e.Symbol)
	}

	if _, ok := t.rates[anchor]; !ok {
		t.order = append(t.order, anchor)
	}
	t.rates[anchor] = one
	return t, nil
}

func (t *Table) Base() domain.Symbol { return t.base }

func (t *Table) AsOf() time.Time { return t.asOf }

func (t *Table) Len() int { return len(t.order) }

func (t *Table) Contains(sym domain.Symbol) bool {
	_, ok := t.rates[sym]
	return ok
}

func (t *Table) Rate(sym domain.Symbol) (decimal.Decimal, error) {
	r, ok := t.rates[sym]
	if !ok {
		return decimal.Zero, &domain.UnknownCurrencyError{Symbol: sym}
	}
	return r, nil
}

// Currencies returns the known symbols in table order, or sorted by code.
func (t *Table) Currencies(sorted bool) []domain.Symbol {
	out := slices.Clone(t.order)
	if sorted {
		slices.Sort(out)
	}
	return out
}

// SetBase re-expresses every rate relative to newBase. The new rates are
// computed aside and swapped in at once.
func (t *Table) SetBase(newBase domain.Symbol) error {
	if newBase == t.base {
		return nil
	}
	factor, ok := t.rates[newBase]
	if !ok {
		return &domain.UnknownCurrencyError{Symbol: newBase}
	}

	next := make(map[domain.Symbol]decimal.Decimal, len(t.rates))
	for sym, r := range t.rates {
		next[sym] = r.DivRound(factor, divisionPrecision)
	}
	next[newBase] = one

	t.rates = next
	t.base = newBase
	return nil
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		rates: maps.Clone(t.rates),
		order: slices.Clone(t.order),
		asOf:  t.asOf,
		base:  t.base,
	}
}
