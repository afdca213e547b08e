package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateEntry is one quotation of the document: 1 unit of the anchor currency
// buys Rate units of Symbol.
type RateEntry struct {
	Symbol Symbol
	Rate   decimal.Decimal
	AsOf   time.Time
}

// Document is the parsed content of one rate document.
type Document struct {
	AsOf    time.Time
	Entries []RateEntry
}
