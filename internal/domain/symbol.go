package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrSymbolRequired = errors.New("currency symbol is required")
	ErrSymbolLength   = errors.New("currency symbol must have three letters")
	ErrSymbolNotInSet = errors.New("currency symbol not supported")
)

// Symbol is a three-letter currency code taken from a SymbolSet.
type Symbol string

func (s Symbol) String() string { return string(s) }

// SymbolSet is the closed set of currency codes a rate document may quote.
type SymbolSet struct {
	codesSet map[Symbol]struct{} // read only copy
	codesLst []Symbol            // read only copy
}

// Parse normalizes raw and checks it belongs to the set.
func (s *SymbolSet) Parse(raw string) (Symbol, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrSymbolRequired
	}
	if len(code) != 3 {
		return "", ErrSymbolLength
	}
	sym := Symbol(code)
	if _, ok := s.codesSet[sym]; !ok {
		return "", ErrSymbolNotInSet
	}
	return sym, nil
}

func (s *SymbolSet) Contains(sym Symbol) bool {
	_, ok := s.codesSet[sym]
	return ok
}

func (s *SymbolSet) Len() int { return len(s.codesLst) }

// Symbols returns the sorted codes of the set.
func (s *SymbolSet) Symbols() []Symbol {
	return slices.Clone(s.codesLst)
}

func NewSymbolSet(codes []string) *SymbolSet {
	codesSet := make(map[Symbol]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		codesSet[Symbol(c)] = struct{}{}
	}
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &SymbolSet{
		codesSet: codesSet,
		codesLst: codesLst,
	}
}

// ISO4217 returns the set of active ISO 4217 currency codes.
func ISO4217() *SymbolSet {
	return NewSymbolSet(iso4217Codes)
}

var iso4217Codes = []string{
	"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG", "AZN",
	"BAM", "BBD", "BDT", "BGN", "BHD", "BIF", "BMD", "BND", "BOB", "BRL",
	"BSD", "BTN", "BWP", "BYN", "BZD", "CAD", "CDF", "CHF", "CLP", "CNY",
	"COP", "CRC", "CUP", "CVE", "CZK", "DJF", "DKK", "DOP", "DZD", "EGP",
	"ERN", "ETB", "EUR", "FJD", "FKP", "GBP", "GEL", "GHS", "GIP", "GMD",
	"GNF", "GTQ", "GYD", "HKD", "HNL", "HRK", "HTG", "HUF", "IDR", "ILS",
	"INR", "IQD", "IRR", "ISK", "JMD", "JOD", "JPY", "KES", "KGS", "KHR",
	"KMF", "KPW", "KRW", "KWD", "KYD", "KZT", "LAK", "LBP", "LKR", "LRD",
	"LSL", "LTL", "LVL", "LYD", "MAD", "MDL", "MGA", "MKD", "MMK", "MNT",
	"MOP", "MRU", "MTL", "MUR", "MVR", "MWK", "MXN", "MYR", "MZN", "NAD",
	"NGN", "NIO", "NOK", "NPR", "NZD", "OMR", "PAB", "PEN", "PGK", "PHP",
	"PKR", "PLN", "PYG", "QAR", "RON", "RSD", "RUB", "RWF", "SAR", "SBD",
	"SCR", "SDG", "SEK", "SGD", "SHP", "SIT", "SKK", "SLE", "SOS", "SRD",
	"SSP", "STN", "SVC", "SYP", "SZL", "THB", "TJS", "TMT", "TND", "TOP",
	"TRY", "TTD", "TWD", "TZS", "UAH", "UGX", "USD", "UYU", "UZS", "VES",
	"VND", "VUV", "WST", "XAF", "XCD", "XOF", "XPF", "YER", "ZAR", "ZMW",
	"ZWL", "CYP", "EEK",
}
