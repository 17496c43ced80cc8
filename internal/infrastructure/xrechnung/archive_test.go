package xrechnung_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

func TestFileArchive_Path(t *testing.T) {
	a := xrechnung.NewFileArchive("/srv/invoices")
	p, err := a.Path("R-2025-001")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/invoices", "xrechnung", "R-2025-001_xrechnung.xml"), p)
	assert.Equal(t, "R-2025-001_xrechnung.xml", xrechnung.Filename("R-2025-001"))
}

func TestFileArchive_SaveCreaDirectorioYDevuelveHash(t *testing.T) {
	root := t.TempDir()
	a := xrechnung.NewFileArchive(root)
	doc := generate(t, sampleInvoice())

	stored, err := a.Save("R-2025-001", doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "xrechnung", "R-2025-001_xrechnung.xml"), stored.Path)
	assert.Equal(t, domxr.Digest(doc), stored.SHA256)
	assert.Len(t, stored.SHA256, 64)

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data), "el archivo contiene exactamente los bytes hasheados")
}

func TestFileArchive_SobrescribeYLoad(t *testing.T) {
	a := xrechnung.NewFileArchive(t.TempDir())
	_, err := a.Save("R-1", "<a>1</a>")
	require.NoError(t, err)
	second, err := a.Save("R-1", "<a>2</a>")
	require.NoError(t, err)

	data, err := a.Load("R-1")
	require.NoError(t, err)
	assert.Equal(t, "<a>2</a>", string(data))
	assert.Equal(t, domxr.Digest("<a>2</a>"), second.SHA256)
}

func TestFileArchive_LoadNoExiste(t *testing.T) {
	a := xrechnung.NewFileArchive(t.TempDir())
	_, err := a.Load("R-404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFileArchive_NumeroInvalido(t *testing.T) {
	a := xrechnung.NewFileArchive(t.TempDir())
	for _, n := range []string{"", "  ", ".", "..", "../etc/passwd", `a\b`, "2025/001"} {
		_, err := a.Save(n, "<a/>")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "número %q", n)
	}
}

func TestFileArchive_DirectorioNoEscribible(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "xrechnung")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := xrechnung.NewFileArchive(root).Save("R-1", "<a/>")
	assert.Error(t, err)
}
