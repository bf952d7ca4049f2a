// Package pager maps a single database file to a fixed-size array of
// in-memory pages. It knows nothing about what a page contains — the
// table package is the only caller that interprets page bytes as a B-tree
// node.
package pager

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const fileOpenFlags = os.O_RDWR | os.O_CREATE

const (
	// PageSize is the fixed unit of file I/O and in-memory caching.
	PageSize = 4096
	// MaxPages bounds the page cache. There is no eviction: capacity is
	// bounded by MaxPages*PageSize (~1.6MB), which is deliberate for an
	// engine this small.
	MaxPages = 400
)

// Page is one cached PageSize-byte buffer. Once returned from Get, a Page
// pointer is stable until Close — tree mutation code relies on holding
// several page pointers at once during a split.
type Page struct {
	Data    [PageSize]byte
	PageNum uint32
}

// Pager owns the file handle and every cached page.
type Pager struct {
	file     afero.File
	pages    [MaxPages]*Page
	numPages uint32
	log      *zap.SugaredLogger
}

// Open opens or creates the file at path on fs, measuring its length and
// rejecting a length that is not a whole number of pages. fs is normally
// afero.NewOsFs(); tests may pass afero.NewMemMapFs() instead.
func Open(fs afero.Fs, path string, log *zap.SugaredLogger) (*Pager, error) {
	f, err := fs.OpenFile(path, fileOpenFlags, 0600)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}
	size := fi.Size()
	if size%PageSize != 0 {
		log.Fatalf("Db file is not a whole number of pages. Corrupt file.")
	}
	return &Pager{
		file:     f,
		numPages: uint32(size / PageSize),
		log:      log,
	}, nil
}

// NumPages reports how many pages the file currently spans.
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetUnusedPageNum returns the page number that the next allocation will
// use. There is no free list: pages are handed out by a monotonic counter.
func (p *Pager) GetUnusedPageNum() uint32 { return p.numPages }

// Get returns the cached page, loading it from disk on first touch. A page
// number past the current end of file is returned zeroed, and numPages is
// raised to make room for it — this is how new pages are "allocated": the
// caller asks for GetUnusedPageNum() and then Gets it.
func (p *Pager) Get(pageNum uint32) (*Page, error) {
	if pageNum >= MaxPages {
		p.log.Fatalf("Tried to fetch page number out of bounds. %d >= %d", pageNum, MaxPages)
	}
	if p.pages[pageNum] == nil {
		pg := &Page{PageNum: pageNum}
		if pageNum < p.numPages {
			if err := p.readPage(pageNum, pg); err != nil {
				return nil, err
			}
		}
		p.pages[pageNum] = pg
		if pageNum+1 > p.numPages {
			p.numPages = pageNum + 1
		}
	}
	return p.pages[pageNum], nil
}

func (p *Pager) readPage(pageNum uint32, pg *Page) error {
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", pageNum, err)
	}
	if _, err := io.ReadFull(p.file, pg.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("pager: read page %d: %w", pageNum, err)
	}
	return nil
}

// Flush writes exactly PageSize bytes for pageNum. It must only be called
// on a page already in the cache.
func (p *Pager) Flush(pageNum uint32) error {
	pg := p.pages[pageNum]
	if pg == nil {
		p.log.Fatalf("Tried to flush null page %d", pageNum)
	}
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", pageNum, err)
	}
	if _, err := p.file.Write(pg.Data[:]); err != nil {
		return fmt.Errorf("pager: write page %d: %w", pageNum, err)
	}
	return nil
}

// Close flushes every cached page, then closes the underlying file.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
	}
	return p.file.Close()
}
