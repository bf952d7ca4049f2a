package table

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree writes the tree structure to w: "- internal (size N)" or
// "- leaf (size N)" per node, 2-space indentation per level, children
// visited in the order child[0], key[0], child[1], key[1], ..., right_child
// (spec §6, original_source/db.c's print_tree).
func (t *Table) PrintTree(w io.Writer) error {
	return t.printNode(w, t.rootPageNum, 0)
}

func (t *Table) printNode(w io.Writer, pageNum uint32, depth int) error {
	page, err := t.pager.Get(pageNum)
	if err != nil {
		return err
	}
	node := NewNode(page)
	indent := strings.Repeat("  ", depth)

	if node.Type() == NodeLeaf {
		numCells := node.NumCells()
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, node.Key(i))
		}
		return nil
	}

	numKeys := node.NumKeys()
	fmt.Fprintf(w, "%s- internal (size %d)\n", indent, numKeys)
	for i := uint32(0); i < numKeys; i++ {
		childPageNum := node.Child(i, t.log)
		if err := t.printNode(w, childPageNum, depth+1); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  - key %d\n", indent, node.IKey(i))
	}
	return t.printNode(w, node.RightChild(), depth+1)
}

// PrintConstants writes the compile-time layout constants, matching
// original_source/db.c's ".constants" output (one NAME: value per line)
// plus the internal-node constants the original didn't need to report.
func PrintConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", RowSize)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", CommonNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", LeafNodeHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", LeafNodeCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", leafNodeSpaceForCells)
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafMaxCells)
	fmt.Fprintf(w, "INTERNAL_NODE_HEADER_SIZE: %d\n", InternalNodeHeaderSize)
	fmt.Fprintf(w, "INTERNAL_NODE_CELL_SIZE: %d\n", InternalNodeCellSize)
	fmt.Fprintf(w, "INTERNAL_NODE_MAX_KEYS: %d\n", InternalMaxKeys)
}
