package rate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"fxconv/internal/adapters"
	"fxconv/internal/adapters/ecb"
	"fxconv/internal/adapters/source"
	"fxconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPrimaryURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"
	DefaultBackupPath = "data/eurofxref-daily.xml"
	dateLayout        = "2006-01-02"
)

// Row is one line of the rates table.
type Row struct {
	Symbol  domain.Symbol   `json:"symbol"`
	Rate    decimal.Decimal `json:"rate"`
	Display string          `json:"display"`
}

type options struct {
	primary adapters.Source
	backup  adapters.Source
	symbols *domain.SymbolSet
	anchor  domain.Symbol
	format  Format
}

type Option func(*options)

func WithPrimary(src adapters.Source) Option { return func(o *options) { o.primary = src } }

func WithBackup(src adapters.Source) Option { return func(o *options) { o.backup = src } }

func WithSymbols(set *domain.SymbolSet) Option { return func(o *options) { o.symbols = set } }

func WithAnchor(anchor domain.Symbol) Option { return func(o *options) { o.anchor = anchor } }

func WithFormat(f Format) Option { return func(o *options) { o.format = f } }

// Converter answers conversion queries against a table loaded once at
// construction. It is not safe for concurrent use; see Service.
type Converter struct {
	table    *Table
	format   Format
	source   string
	fallback bool
}

// NewConverter loads the daily document from the primary source, falling
// back to the backup source. It fails if neither yields a valid document.
func NewConverter(ctx context.Context, opts ...Option) (*Converter, error) {
	o := options{
		symbols: domain.ISO4217(),
		anchor:  ecb.Anchor,
		format:  DefaultFormat,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.primary == nil {
		o.primary = source.NewHTTPSource(&http.Client{Timeout: 10 * time.Second}, DefaultPrimaryURL)
	}
	if o.backup == nil {
		o.backup = source.NewFileSource(DefaultBackupPath)
	}

	res, err := source.NewResolver(o.primary, o.backup, ecb.NewParser(o.symbols)).Resolve(ctx)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(res.Document.Entries, res.Document.AsOf, o.anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate table from %q: %w", res.Source, err)
	}

	logrus.WithFields(logrus.Fields{
		"source":   res.Source,
		"fallback": res.Fallback,
		"as_of":    table.AsOf().Format(dateLayout),
		"entries":  table.Len(),
	}).Info("Rate table loaded")

	return &Converter{table: table, format: o.format, source: res.Source, fallback: res.Fallback}, nil
}

func (c *Converter) AsOf() time.Time { return c.table.AsOf() }

func (c *Converter) Base() domain.Symbol { return c.table.Base() }

// Source names the location the table was loaded from.
func (c *Converter) Source() string { return c.source }

func (c *Converter) FromBackup() bool { return c.fallback }

func (c *Converter) Format() Format { return c.format }

func (c *Converter) Len() int { return c.table.Len() }

func (c *Converter) Contains(sym domain.Symbol) bool { return c.table.Contains(sym) }

func (c *Converter) SetBase(sym domain.Symbol) error { return c.table.SetBase(sym) }

func (c *Converter) Rate(sym domain.Symbol) (decimal.Decimal, error) { return c.table.Rate(sym) }

func (c *Converter) Currencies(sorted bool) []domain.Symbol { return c.table.Currencies(sorted) }

// Exchange converts amount units of from into units of to. The result is
// not rounded.
func (c *Converter) Exchange(amount decimal.Decimal, from, to domain.Symbol) (decimal.Decimal, error) {
	rFrom, rTo, err := c.pair(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(rTo).DivRound(rFrom, divisionPrecision), nil
}

// CrossRate returns how many units of to one unit of from buys.
func (c *Converter) CrossRate(from, to domain.Symbol) (decimal.Decimal, error) {
	rFrom, rTo, err := c.pair(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return one, nil
	}
	return rTo.DivRound(rFrom, divisionPrecision), nil
}

// CrossRateToBase is CrossRate with the current base as target.
func (c *Converter) CrossRateToBase(from domain.Symbol) (decimal.Decimal, error) {
	return c.CrossRate(from, c.table.Base())
}

// RatesTable returns one row per currency in table order when symbols is
// nil, otherwise one row per requested symbol in the given order.
func (c *Converter) RatesTable(symbols []domain.Symbol) ([]Row, error) {
	if symbols == nil {
		symbols = c.table.Currencies(false)
	}
	rows := make([]Row, 0, len(symbols))
	for _, sym := range symbols {
		r, err := c.table.Rate(sym)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Symbol: sym, Rate: r, Display: c.format.Decimal(r)})
	}
	return rows, nil
}

// Render writes the full table headed by the base currency and as-of date.
func (c *Converter) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Base currency: %s (rates as of %s)\n", c.table.Base(), c.table.AsOf().Format(dateLayout)); err != nil {
		return err
	}
	rows, err := c.RatesTable(nil)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if _, err = fmt.Fprintf(tw, "%s\t%s\n", row.Symbol, row.Display); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (c *Converter) String() string {
	var sb strings.Builder
	_ = c.Render(&sb)
	return sb.String()
}

func (c *Converter) pair(from, to domain.Symbol) (decimal.Decimal, decimal.Decimal, error) {
	rFrom, err := c.table.Rate(from)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	rTo, err := c.table.Rate(to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return rFrom, rTo, nil
}
