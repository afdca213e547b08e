package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrFormat            = errors.New("malformed rate document")
	ErrDuplicateEntry    = errors.New("duplicate rate entry")
	ErrAmbiguousAnchor   = errors.New("ambiguous anchor currency")
	ErrUnknownCurrency   = errors.New("unknown currency")
	ErrSourceUnavailable = errors.New("rate source unavailable")
)

// FormatError reports a field of the rate document that failed validation.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

type DuplicateEntryError struct {
	Symbol Symbol
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("currency %s appears more than once", e.Symbol)
}

func (e *DuplicateEntryError) Is(target error) bool { return target == ErrDuplicateEntry }

// AmbiguousAnchorError is returned when the anchor currency is quoted in the
// document with a rate other than 1.
type AmbiguousAnchorError struct {
	Symbol Symbol
	Rate   decimal.Decimal
}

func (e *AmbiguousAnchorError) Error() string {
	return fmt.Sprintf("anchor currency %s quoted with rate %s", e.Symbol, e.Rate)
}

func (e *AmbiguousAnchorError) Is(target error) bool { return target == ErrAmbiguousAnchor }

type UnknownCurrencyError struct {
	Symbol Symbol
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("currency %q is not in the rate table", string(e.Symbol))
}

func (e *UnknownCurrencyError) Is(target error) bool { return target == ErrUnknownCurrency }

// SourceUnavailableError carries the failures of both the primary and the
// backup source.
type SourceUnavailableError struct {
	Primary error
	Backup  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("primary source: %v; backup source: %v", e.Primary, e.Backup)
}

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

func (e *SourceUnavailableError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Backup != nil {
		errs = append(errs, e.Backup)
	}
	return errs
}
