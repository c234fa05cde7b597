package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) Ledger {
	t.Helper()
	l, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestDownloads(t *testing.T) {
	l := newTestLedger(t)

	last, err := l.LastDownload(1)
	require.NoError(t, err)
	assert.Nil(t, last)

	require.NoError(t, l.RecordDownload(1, "a.pdf", "/tmp/a.pdf"))
	require.NoError(t, l.RecordDownload(1, "b.pdf", "/tmp/b.pdf"))
	require.NoError(t, l.RecordDownload(2, "c.pdf", "/tmp/c.pdf"))

	last, err = l.LastDownload(1)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, int64(1), last.LyricID)
	assert.Equal(t, "b.pdf", last.Filename)
	assert.Equal(t, "/tmp/b.pdf", last.Path)
	assert.False(t, last.DownloadedAt.IsZero())
}

func TestImports(t *testing.T) {
	l := newTestLedger(t)

	ok, err := l.IsImported("/inbox/a.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.MarkImported("/inbox/a.txt", 10))
	require.NoError(t, l.MarkImported("/inbox/a.txt", 11), "marking twice is a no-op")

	ok, err = l.IsImported("/inbox/a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLedgerPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, l.MarkImported("/inbox/x.lrc", 1))
	require.NoError(t, l.Close())

	l, err = NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer l.Close()
	ok, err := l.IsImported("/inbox/x.lrc")
	require.NoError(t, err)
	assert.True(t, ok)
}
