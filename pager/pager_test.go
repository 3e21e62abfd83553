package pager

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "pager_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestOpenEmptyFile(t *testing.T) {
	p, err := Open(tempFile(t))
	require.NoError(t, err)
	defer p.file.Close()

	require.EqualValues(t, 0, p.NumPages())
}

func TestOpenRejectsPartialPage(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize+10), 0600))

	_, err := Open(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Corrupt file")
}

func TestGetPageOutOfBounds(t *testing.T) {
	p, err := Open(tempFile(t))
	require.NoError(t, err)
	defer p.file.Close()

	_, err = p.GetPage(TableMaxPages)
	require.Error(t, err)
}

func TestGetPageGrowsNumPages(t *testing.T) {
	p, err := Open(tempFile(t))
	require.NoError(t, err)
	defer p.file.Close()

	_, err = p.GetPage(3)
	require.NoError(t, err)
	require.EqualValues(t, 4, p.NumPages())
}

func TestFlushNullPageIsFatal(t *testing.T) {
	p, err := Open(tempFile(t))
	require.NoError(t, err)
	defer p.file.Close()

	err = p.Flush(0)
	require.Error(t, err)
}

func TestRoundTripThroughClose(t *testing.T) {
	path := tempFile(t)

	p, err := Open(path)
	require.NoError(t, err)

	buf, err := p.GetPage(0)
	require.NoError(t, err)
	buf[0] = 0xAB
	require.NoError(t, p.Close())

	p2, err := Open(path)
	require.NoError(t, err)
	defer p2.file.Close()
	require.EqualValues(t, 1, p2.NumPages())

	buf2, err := p2.GetPage(0)
	require.NoError(t, err)
	require.EqualValues(t, 0xAB, buf2[0])
}

func TestUnusedPageNumIsMonotonic(t *testing.T) {
	p, err := Open(tempFile(t))
	require.NoError(t, err)
	defer p.file.Close()

	require.EqualValues(t, 0, p.UnusedPageNum())
	_, err = p.GetPage(0)
	require.NoError(t, err)
	require.EqualValues(t, 1, p.UnusedPageNum())
}
