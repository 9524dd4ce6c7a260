// Package pager owns the backing file for the store and a bounded cache of
// its pages. It is the only package that touches the database file
// directly; everything above it operates on in-memory page buffers.
//
// The cache is sized to hold the whole table (MaxPages slots) rather than
// evicting: reaching the ceiling is a fatal error, not an eviction trigger.
// There is no per-page dirty tracking — every page that was ever loaded is
// assumed dirty and gets rewritten at Close.
package pager

import (
	"fmt"
	"io"
	"os"

	"github.com/NebulousLabs/Sia/build"
)

const (
	// PageSize is the fixed size of one page and the unit of file I/O.
	PageSize = 4096

	// MaxPages bounds the pager's cache; a request past this is fatal.
	MaxPages = 100
)

// Page is the in-memory buffer for one page slot.
type Page [PageSize]byte

// Pager is a page cache over a single backing file.
type Pager struct {
	file     *os.File
	pages    [MaxPages]*Page
	numPages uint32
}

// Open opens filename for read/write, creating it if absent, and computes
// the page count from its length. A length that isn't a whole multiple of
// PageSize means the file is corrupt and Open fails.
func Open(filename string) (*Pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, build.ExtendErr("pager: open database file", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, build.ExtendErr("pager: stat database file", err)
	}

	size := fi.Size()
	if size%PageSize != 0 {
		f.Close()
		return nil, fmt.Errorf("pager: corrupt file: length %d is not a multiple of page size %d", size, PageSize)
	}

	return &Pager{
		file:     f,
		numPages: uint32(size / PageSize),
	}, nil
}

// NumPages reports how many pages the file currently occupies.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns the buffer for page n, loading it from disk on first
// access. A page number of MaxPages or more is fatal. A page within MaxPages but
// beyond the pages present on disk is a fresh, zeroed page; the page count
// is bumped to account for it.
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if n >= MaxPages {
		return nil, fmt.Errorf("pager: page number %d out of bounds (max %d)", n, MaxPages)
	}

	if p.pages[n] == nil {
		page := &Page{}
		if n < p.numPages {
			if err := p.readPage(n, page); err != nil {
				return nil, err
			}
		}
		p.pages[n] = page
		if n >= p.numPages {
			p.numPages = n + 1
		}
	}

	return p.pages[n], nil
}

func (p *Pager) readPage(n uint32, dst *Page) error {
	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return build.ExtendErr(fmt.Sprintf("pager: seek to page %d", n), err)
	}
	if _, err := io.ReadFull(p.file, dst[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return build.ExtendErr(fmt.Sprintf("pager: read page %d", n), err)
	}
	return nil
}

// Flush writes the full PageSize bytes of page n to its slot in the file.
// Flushing a page that was never loaded is fatal.
func (p *Pager) Flush(n uint32) error {
	page := p.pages[n]
	if page == nil {
		return fmt.Errorf("pager: flush of unloaded page %d", n)
	}

	off := int64(n) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return build.ExtendErr(fmt.Sprintf("pager: seek to page %d", n), err)
	}
	if _, err := p.file.Write(page[:]); err != nil {
		return build.ExtendErr(fmt.Sprintf("pager: write page %d", n), err)
	}
	return nil
}

// Close flushes every loaded page and closes the backing file. This is the
// only path that writes the cache back to disk.
func (p *Pager) Close() error {
	for n := uint32(0); n < p.numPages; n++ {
		if p.pages[n] == nil {
			continue
		}
		if err := p.Flush(n); err != nil {
			return err
		}
	}
	if err := p.file.Close(); err != nil {
		return build.ExtendErr("pager: close database file", err)
	}
	return nil
}
