package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fxconv/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Cube/>"), 0o600))

	s := NewFileSource(path)
	body, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "<Cube/>", string(body))
	require.Equal(t, "file://"+path, s.Name())
}

func TestFileSource_Missing(t *testing.T) {
	s := NewFileSource(filepath.Join(t.TempDir(), "missing.xml"))
	_, err := s.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, os.ErrNotExist)
}
