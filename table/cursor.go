package table

// Cursor names a position in the tree: either an existing cell, or "one
// past the last cell of the rightmost leaf" (EndOfTable).
type Cursor struct {
	table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// leafFind binary-searches pageNum's cells for key, returning a cursor at
// the matching cell (if present) or at the insertion point — the smallest
// index whose key is > target.
func (t *Table) leafFind(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.Get(pageNum)
	if err != nil {
		return nil, err
	}
	node := NewNode(page)
	numCells := node.NumCells()

	lo, hi := uint32(0), numCells
	for lo < hi {
		mid := lo + (hi-lo)/2
		if node.Key(mid) == key {
			return &Cursor{table: t, PageNum: pageNum, CellNum: mid}, nil
		}
		if key < node.Key(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &Cursor{table: t, PageNum: pageNum, CellNum: lo}, nil
}

// internalFindChildIndex returns the smallest index i in [0, NumKeys) with
// IKey(i) >= key. Used both to descend during a search and, given an exact
// key match, to locate the child index update_internal_key should rewrite.
func internalFindChildIndex(node Node, key uint32) uint32 {
	numKeys := node.NumKeys()
	lo, hi := uint32(0), numKeys
	for lo < hi {
		mid := lo + (hi-lo)/2
		if node.IKey(mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// find descends from the root to locate key, returning a cursor positioned
// at the matching leaf cell or its insertion point.
func (t *Table) find(key uint32) (*Cursor, error) {
	pageNum := t.rootPageNum
	for {
		page, err := t.pager.Get(pageNum)
		if err != nil {
			return nil, err
		}
		node := NewNode(page)
		if node.Type() == NodeLeaf {
			return t.leafFind(pageNum, key)
		}
		idx := internalFindChildIndex(node, key)
		pageNum = node.Child(idx, t.log)
	}
}

// start returns a cursor at the first row in key order.
func (t *Table) start() (*Cursor, error) {
	c, err := t.find(0)
	if err != nil {
		return nil, err
	}
	page, err := t.pager.Get(c.PageNum)
	if err != nil {
		return nil, err
	}
	c.EndOfTable = NewNode(page).NumCells() == 0
	return c, nil
}

// Advance moves the cursor to the next cell in key order, following
// next_leaf when it runs off the end of a leaf.
func (c *Cursor) Advance() error {
	page, err := c.table.pager.Get(c.PageNum)
	if err != nil {
		return err
	}
	node := NewNode(page)
	c.CellNum++
	if c.CellNum < node.NumCells() {
		return nil
	}
	nextLeaf := node.NextLeaf()
	if nextLeaf == 0 {
		c.EndOfTable = true
		return nil
	}
	c.PageNum = nextLeaf
	c.CellNum = 0
	return nil
}

// Value returns the raw row bytes the cursor currently points at.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.table.pager.Get(c.PageNum)
	if err != nil {
		return nil, err
	}
	return NewNode(page).Value(c.CellNum), nil
}
