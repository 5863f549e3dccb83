package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// smallest valid PNG header plus IHDR chunk start
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	s := &Local{Dir: dir, BaseURL: "http://localhost:9000/"}

	url, err := s.SaveImage(context.Background(), bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:9000/uploads/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://localhost:9000/uploads/")
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	s := &Local{Dir: t.TempDir(), BaseURL: "http://localhost:9000"}

	_, err := s.SaveImage(context.Background(), strings.NewReader("just some text"))
	require.ErrorIs(t, err, ErrNotImage)

	_, err = s.SaveImage(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, ErrNotImage)
}

func TestSaveImage_RejectsSVG(t *testing.T) {
	dir := t.TempDir()
	s := &Local{Dir: dir, BaseURL: "http://localhost:9000"}
	svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"><script>alert(1)</script></svg>`

	_, err := s.SaveImage(context.Background(), strings.NewReader(svg))
	require.ErrorIs(t, err, ErrNotImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
