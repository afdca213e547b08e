package adapters

import (
	"context"
	"io"

	"fxconv/internal/domain"
)

// Source produces the raw bytes of a rate document.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

type DocumentParser interface {
	Parse(r io.Reader) (domain.Document, error)
}

type CurrencyRepository interface {
	ListCodes(ctx context.Context) ([]string, error)
}
