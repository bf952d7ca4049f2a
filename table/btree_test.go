package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func insertN(t *testing.T, tbl *Table, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, tbl.Insert(row(uint32(i))))
	}
}

// TestInsertDuplicateKeyRejected covers spec invariant 6: a duplicate insert
// leaves the tree untouched and reports ErrDuplicateKey.
func TestInsertDuplicateKeyRejected(t *testing.T) {
	tbl, _ := newTestTable(t)
	require.NoError(t, tbl.Insert(row(1)))

	var before bytes.Buffer
	require.NoError(t, tbl.PrintTree(&before))

	err := tbl.Insert(row(1))
	require.ErrorIs(t, err, ErrDuplicateKey)

	var after bytes.Buffer
	require.NoError(t, tbl.PrintTree(&after))
	require.Equal(t, before.String(), after.String())
}

// TestSelectEmptyTable matches the "DB is empty." message for a fresh table.
func TestSelectEmptyTable(t *testing.T) {
	tbl, _ := newTestTable(t)
	var out bytes.Buffer
	require.NoError(t, tbl.Select(&out))
	require.Equal(t, "DB is empty.\n", out.String())
}

// TestPersistenceAcrossReopen covers spec scenario S1: rows inserted, the
// table closed, and a fresh Open against the same file reproduces every row.
func TestPersistenceAcrossReopen(t *testing.T) {
	tbl, fs := newTestTable(t)
	insertN(t, tbl, 20)
	require.NoError(t, tbl.Close())

	reopened := reopenTestTable(t, fs)
	rows := allRows(t, reopened)
	require.Len(t, rows, 20)
	for i, r := range rows {
		require.EqualValues(t, i, r.ID)
	}
}

// TestLeafSplitAtMaxCells covers spec scenario S4: inserting one more row
// than LEAF_NODE_MAX_CELLS forces a leaf split and promotes the root to an
// internal node, while every row remains reachable in order.
func TestLeafSplitAtMaxCells(t *testing.T) {
	tbl, _ := newTestTable(t)
	insertN(t, tbl, int(LeafMaxCells)+1)

	rows := allRows(t, tbl)
	require.Len(t, rows, int(LeafMaxCells)+1)
	for i, r := range rows {
		require.EqualValues(t, i, r.ID)
	}

	var out bytes.Buffer
	require.NoError(t, tbl.PrintTree(&out))
	require.Contains(t, out.String(), "- internal (size 1)")
}

// TestDeepTreeProducesInternalSplit covers spec scenario S5: enough leaf
// splits accumulate children at the root to force an internal split,
// producing a tree deeper than two levels, while preserving key order.
func TestDeepTreeProducesInternalSplit(t *testing.T) {
	tbl, _ := newTestTable(t)
	const n = 200
	insertN(t, tbl, n)

	rows := allRows(t, tbl)
	require.Len(t, rows, n)
	for i, r := range rows {
		require.EqualValues(t, i, r.ID)
	}

	var out bytes.Buffer
	require.NoError(t, tbl.PrintTree(&out))
	require.Contains(t, out.String(), "- internal (size 2)")
}

// TestInsertDescendingOrderStillSorts exercises splits that occur at the
// front of a leaf rather than the back.
func TestInsertDescendingOrderStillSorts(t *testing.T) {
	tbl, _ := newTestTable(t)
	const n = 50
	for i := n - 1; i >= 0; i-- {
		require.NoError(t, tbl.Insert(row(uint32(i))))
	}
	rows := allRows(t, tbl)
	require.Len(t, rows, n)
	for i, r := range rows {
		require.EqualValues(t, i, r.ID)
	}
}

// checkMaxKeyInvariant walks the tree verifying spec invariant 2: every
// internal separator key equals the maximum key in its child subtree.
func checkMaxKeyInvariant(t *testing.T, tbl *Table, pageNum uint32) {
	t.Helper()
	page, err := tbl.pager.Get(pageNum)
	require.NoError(t, err)
	node := NewNode(page)
	if node.Type() == NodeLeaf {
		return
	}
	numKeys := node.NumKeys()
	for i := uint32(0); i < numKeys; i++ {
		childPageNum := node.Child(i, tbl.log)
		childMax, err := tbl.maxKey(childPageNum)
		require.NoError(t, err)
		require.Equal(t, childMax, node.IKey(i), "separator key %d mismatched child max", i)
		checkMaxKeyInvariant(t, tbl, childPageNum)
	}
	checkMaxKeyInvariant(t, tbl, node.RightChild())
}

func TestMaxKeyInvariantHoldsAfterManyInserts(t *testing.T) {
	tbl, _ := newTestTable(t)
	insertN(t, tbl, 300)
	checkMaxKeyInvariant(t, tbl, tbl.rootPageNum)
}

// checkParentPointers covers spec invariant 3: every child's parent pointer
// names the page that actually references it.
func checkParentPointers(t *testing.T, tbl *Table, pageNum uint32, expectedParent uint32) {
	t.Helper()
	page, err := tbl.pager.Get(pageNum)
	require.NoError(t, err)
	node := NewNode(page)
	if !node.IsRoot() {
		require.Equal(t, expectedParent, node.ParentPage())
	}
	if node.Type() == NodeLeaf {
		return
	}
	numKeys := node.NumKeys()
	for i := uint32(0); i < numKeys; i++ {
		checkParentPointers(t, tbl, node.Child(i, tbl.log), pageNum)
	}
	checkParentPointers(t, tbl, node.RightChild(), pageNum)
}

func TestParentPointersConsistentAfterManyInserts(t *testing.T) {
	tbl, _ := newTestTable(t)
	insertN(t, tbl, 300)
	checkParentPointers(t, tbl, tbl.rootPageNum, tbl.rootPageNum)
}
