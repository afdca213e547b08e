// Package ecb parses the euro foreign exchange reference document published
// by the European Central Bank (eurofxref XML).
package ecb

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fxconv/internal/domain"

	"github.com/shopspring/decimal"
)

// Anchor is the currency all eurofxref rates are quoted against.
const Anchor domain.Symbol = "EUR"

const dateLayout = "2006-01-02"

const quoteElement = "Cube"

type Parser struct {
	symbols *domain.SymbolSet
}

func NewParser(symbols *domain.SymbolSet) *Parser {
	return &Parser{symbols: symbols}
}

// Parse reads the document and returns its quotations in document order.
// Any quotation element carrying a bad date, symbol or rate fails the whole
// parse with a *domain.FormatError.
func (p *Parser) Parse(r io.Reader) (domain.Document, error) {
	var (
		doc      domain.Document
		haveDate bool
	)

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Document{}, &domain.FormatError{Field: "document", Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != quoteElement {
			continue
		}
		q := readQuote(start)

		if q.hasTime {
			asOf, parseErr := time.Parse(dateLayout, strings.TrimSpace(q.time))
			if parseErr != nil {
				return domain.Document{}, &domain.FormatError{Field: "time", Value: q.time, Err: parseErr}
			}
			doc.AsOf = asOf
			haveDate = true
		}

		if !q.hasCurrency && !q.hasRate {
			continue
		}
		if !q.hasCurrency {
			return domain.Document{}, &domain.FormatError{Field: "currency", Value: "", Err: fmt.Errorf("rate %q without currency", q.rate)}
		}
		if !q.hasRate {
			return domain.Document{}, &domain.FormatError{Field: "rate", Value: "", Err: fmt.Errorf("currency %q without rate", q.currency)}
		}
		if !haveDate {
			return domain.Document{}, &domain.FormatError{Field: "time", Value: "", Err: fmt.Errorf("quotation for %q precedes any date", q.currency)}
		}

		entry, entryErr := p.parseEntry(q, doc.AsOf)
		if entryErr != nil {
			return domain.Document{}, entryErr
		}
		doc.Entries = append(doc.Entries, entry)
	}

	if !haveDate {
		return domain.Document{}, &domain.FormatError{Field: "time", Value: "", Err: errors.New("document carries no date")}
	}
	return doc, nil
}

func (p *Parser) parseEntry(q quote, asOf time.Time) (domain.RateEntry, error) {
	sym, err := p.symbols.Parse(q.currency)
	if err != nil {
		return domain.RateEntry{}, &domain.FormatError{Field: "currency", Value: q.currency, Err: err}
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(q.rate))
	if err != nil {
		return domain.RateEntry{}, &domain.FormatError{Field: "rate", Value: q.rate, Err: err}
	}
	if rate.Sign() <= 0 {
		return domain.RateEntry{}, &domain.FormatError{Field: "rate", Value: q.rate, Err: errors.New("rate must be positive")}
	}

	return domain.RateEntry{Symbol: sym, Rate: rate, AsOf: asOf}, nil
}

type quote struct {
	time, currency, rate          string
	hasTime, hasCurrency, hasRate bool
}

func readQuote(el xml.StartElement) quote {
	var q quote
	for _, attr := range el.Attr {
		switch attr.Name.Local {
		case "time":
			q.time, q.hasTime = attr.Value, true
		case "currency":
			q.currency, q.hasCurrency = attr.Value, true
		case "rate":
			q.rate, q.hasRate = attr.Value, true
		}
	}
	return q
}
