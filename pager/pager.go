// Package pager implements the page cache and file I/O layer for vqlite's
// single-table B+Tree. It knows nothing about rows, keys, or node layout —
// it hands out fixed-size byte buffers by page number and flushes them back
// to the backing file on request.
package pager

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed size, in bytes, of every page in the file and
	// in the page cache. Every page is interpreted as a B+Tree node.
	PageSize = 4096

	// TableMaxPages bounds the page cache (and therefore the database) to
	// TableMaxPages * PageSize bytes. There is no eviction policy: once a
	// page is cached it stays cached for the lifetime of the Pager.
	TableMaxPages = 100
)

// Pager owns the backing file and a fixed-size slotted cache of page
// buffers. It is read-through (a miss loads from disk) with no eviction,
// and durable only on Flush/Close — nothing is written back eagerly.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      [TableMaxPages]*[PageSize]byte
}

// Open opens filename for read/write, creating it if necessary, and
// computes NumPages from the file's length. A file length that is not an
// exact multiple of PageSize indicates a corrupt database and is fatal.
func Open(filename string) (*Pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: open %q", filename)
	}

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: seek end of %q", filename)
	}

	if length%PageSize != 0 {
		return nil, errors.Errorf("DB file is not a whole number of pages. Corrupt file.")
	}

	p := &Pager{
		file:       f,
		fileLength: length,
		numPages:   uint32(length / PageSize),
	}
	slog.Debug("pager.Open", "filename", filename, "numPages", p.numPages)
	return p, nil
}

// NumPages reports how many pages the pager currently knows about,
// including pages that exist only in cache and have not yet been flushed.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns the cached buffer for pageNum, reading it from disk on
// first access. Pages beyond the current end of file are returned as
// freshly zeroed buffers — callers must initialize them (InitLeafNode /
// InitInternalNode) before relying on their contents.
func (p *Pager) GetPage(pageNum uint32) (*[PageSize]byte, error) {
	if pageNum >= TableMaxPages {
		return nil, errors.Errorf("pager: page %d out of bounds (max %d)", pageNum, TableMaxPages)
	}

	if p.pages[pageNum] == nil {
		buf := new([PageSize]byte)
		numPagesOnDisk := uint32(p.fileLength / PageSize)
		if pageNum < numPagesOnDisk {
			if _, err := p.file.Seek(int64(pageNum)*PageSize, io.SeekStart); err != nil {
				return nil, errors.Wrapf(err, "pager: seek page %d", pageNum)
			}
			if _, err := io.ReadFull(p.file, buf[:]); err != nil {
				return nil, errors.Wrapf(err, "pager: read page %d", pageNum)
			}
		}
		p.pages[pageNum] = buf
	}

	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}

	return p.pages[pageNum], nil
}

// UnusedPageNum returns the page number that will be handed out by the next
// allocation. There is no free list: deletion is unsupported, so page
// numbers only ever grow.
func (p *Pager) UnusedPageNum() uint32 {
	return p.numPages
}

// Flush writes the cached buffer for pageNum back to its slot in the file.
// Flushing a page with no cached buffer is a storage invariant violation —
// it means the caller lost track of what it allocated.
func (p *Pager) Flush(pageNum uint32) error {
	if p.pages[pageNum] == nil {
		return errors.Errorf("pager: tried to flush null page %d", pageNum)
	}
	if _, err := p.file.Seek(int64(pageNum)*PageSize, io.SeekStart); err != nil {
		return errors.Wrapf(err, "pager: seek page %d", pageNum)
	}
	if _, err := p.file.Write(p.pages[pageNum][:]); err != nil {
		return errors.Wrapf(err, "pager: write page %d", pageNum)
	}
	if int64(pageNum+1)*PageSize > p.fileLength {
		p.fileLength = int64(pageNum+1) * PageSize
	}
	return nil
}

// Close flushes every cached page and closes the backing file. Errors are
// fatal to the caller — there is no partial-flush recovery path.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
	}
	if err := p.file.Close(); err != nil {
		return errors.Wrap(err, "pager: close file")
	}
	return nil
}
