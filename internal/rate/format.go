package rate

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format controls how rates are rendered for display. It is passed
// explicitly to every rendering operation.
type Format struct {
	Precision        int32
	DecimalSeparator string
}

var DefaultFormat = Format{Precision: 4, DecimalSeparator: "."}

func (f Format) Decimal(d decimal.Decimal) string {
	s := d.StringFixed(f.Precision)
	if f.DecimalSeparator != "" && f.DecimalSeparator != "." {
		s = strings.Replace(s, ".", f.DecimalSeparator, 1)
	}
	return s
}
