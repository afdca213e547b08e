package source

import (
	"context"
	"fmt"
	"os"

	"fxconv/internal/domain"
)

// FileSource reads a rate document kept on local disk.
type FileSource struct {
	path string
}

func (s *FileSource) Name() string { return "file://" + s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w: %w", s.path, domain.ErrSourceUnavailable, err)
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w: %w", s.path, domain.ErrSourceUnavailable, err)
	}
	return body, nil
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}
