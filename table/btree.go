// Package table implements the paged B+ tree storage engine: the node
// codec, cursor/search, and tree mutation described in spec §4. Page 0 is
// always the root (spec invariant 5); there is no separate metadata page.
package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/vpareek2/BitDB/pager"
	"go.uber.org/zap"
)

// ErrDuplicateKey is the sole recoverable write error (spec §7 taxon b).
var ErrDuplicateKey = errors.New("Error: Duplicate key.")

// Table is the single-table B+ tree. It owns the pager and knows the root
// page number, which never changes once the file exists.
type Table struct {
	pager       *pager.Pager
	rootPageNum uint32
	log         *zap.SugaredLogger
}

// Open opens or creates the database file at path, initializing a fresh
// root leaf if the file is new.
func Open(fs afero.Fs, path string, log *zap.SugaredLogger) (*Table, error) {
	p, err := pager.Open(fs, path, log)
	if err != nil {
		return nil, err
	}
	t := &Table{pager: p, rootPageNum: 0, log: log}
	if p.NumPages() == 0 {
		root, err := p.Get(0)
		if err != nil {
			return nil, err
		}
		node := InitializeLeaf(root)
		node.SetIsRoot(true)
	}
	return t, nil
}

// Close flushes every cached page and closes the file. A clean close is
// the only durability boundary this engine has (spec §5).
func (t *Table) Close() error {
	return t.pager.Close()
}

// maxKey returns the maximum key present in the subtree rooted at pageNum.
// For a leaf this is its last cell's key; for an internal node it recurses
// into right_child. The recursion terminates because tree depth is bounded
// by the tree's fan-out (spec §4.2).
func (t *Table) maxKey(pageNum uint32) (uint32, error) {
	page, err := t.pager.Get(pageNum)
	if err != nil {
		return 0, err
	}
	node := NewNode(page)
	if node.Type() == NodeLeaf {
		return node.Key(node.NumCells() - 1), nil
	}
	return t.maxKey(node.RightChild())
}

// Insert adds row under key row.ID. Returns ErrDuplicateKey if the key is
// already present; the tree is left byte-identical in that case.
func (t *Table) Insert(row Row) error {
	cursor, err := t.find(row.ID)
	if err != nil {
		return err
	}
	page, err := t.pager.Get(cursor.PageNum)
	if err != nil {
		return err
	}
	node := NewNode(page)
	if cursor.CellNum < node.NumCells() && node.Key(cursor.CellNum) == row.ID {
		return ErrDuplicateKey
	}
	return t.leafInsert(cursor, row.ID, row)
}

// Select writes every row in key order to w, as "(id, username, email)"
// per line. Writes "DB is empty." if there are no rows.
func (t *Table) Select(w io.Writer) error {
	cursor, err := t.start()
	if err != nil {
		return err
	}
	if cursor.EndOfTable {
		fmt.Fprintln(w, "DB is empty.")
		return nil
	}
	for !cursor.EndOfTable {
		raw, err := cursor.Value()
		if err != nil {
			return err
		}
		row, err := DeserializeRow(raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		if err := cursor.Advance(); err != nil {
			return err
		}
	}
	return nil
}
