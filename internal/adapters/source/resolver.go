package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"fxconv/internal/adapters"
	"fxconv/internal/domain"

	"github.com/sirupsen/logrus"
)

// Result is a parsed document together with the source that produced it.
type Result struct {
	Document domain.Document
	Source   string
	Fallback bool
}

// Resolver loads a document from a primary source and falls back to a backup
// source when the primary cannot be fetched or its document does not parse.
type Resolver struct {
	primary adapters.Source
	backup  adapters.Source
	parser  adapters.DocumentParser
}

func NewResolver(primary, backup adapters.Source, parser adapters.DocumentParser) *Resolver {
	return &Resolver{primary: primary, backup: backup, parser: parser}
}

func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	doc, primaryErr := r.load(ctx, r.primary)
	if primaryErr == nil {
		return Result{Document: doc, Source: nameOf(r.primary)}, nil
	}

	logrus.WithError(primaryErr).WithFields(logrus.Fields{
		"source": nameOf(r.primary),
		"cause":  failureKind(primaryErr),
	}).Warn("Primary rate source failed, falling back to backup")

	if r.backup == nil {
		return Result{}, &domain.SourceUnavailableError{Primary: primaryErr, Backup: errors.New("no backup source configured")}
	}

	doc, backupErr := r.load(ctx, r.backup)
	if backupErr != nil {
		return Result{}, &domain.SourceUnavailableError{Primary: primaryErr, Backup: backupErr}
	}
	return Result{Document: doc, Source: nameOf(r.backup), Fallback: true}, nil
}

func (r *Resolver) load(ctx context.Context, src adapters.Source) (domain.Document, error) {
	if src == nil {
		return domain.Document{}, fmt.Errorf("no source configured: %w", domain.ErrSourceUnavailable)
	}
	body, err := src.Fetch(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	doc, err := r.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to parse document from %q: %w", src.Name(), err)
	}
	return doc, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrFormat):
		return "format"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "fetch"
	}
}

func nameOf(src adapters.Source) string {
	if src == nil {
		return "<none>"
	}
	return src.Name()
}
