package table

import "github.com/vpareek2/BitDB/pager"

// Shared node header, present on every page regardless of node type
// (spec §3): node_type(1) + is_root(1) + parent_page(4).
const (
	NodeTypeSize        = 1
	NodeTypeOffset      = 0
	IsRootSize          = 1
	IsRootOffset        = NodeTypeOffset + NodeTypeSize
	ParentPointerSize   = 4
	ParentPointerOffset = IsRootOffset + IsRootSize

	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize
)

// Leaf node header and cell layout.
const (
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeNumCellsSize   = 4
	LeafNodeNextLeafOffset = LeafNodeNumCellsOffset + LeafNodeNumCellsSize
	LeafNodeNextLeafSize   = 4
	LeafNodeHeaderSize     = LeafNodeNextLeafOffset + LeafNodeNextLeafSize

	LeafNodeKeySize   = 4
	LeafNodeKeyOffset = 0
)

// Internal node header and cell layout.
const (
	InternalNodeNumKeysOffset   = CommonNodeHeaderSize
	InternalNodeNumKeysSize     = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize
	InternalNodeRightChildSize   = 4
	InternalNodeHeaderSize       = InternalNodeRightChildOffset + InternalNodeRightChildSize

	InternalNodeChildSize = 4
	InternalNodeKeySize   = 4
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize

	// InternalMaxKeys is kept small (spec §3: "for testing visibility") so
	// that splits, root promotion, and depth-3 trees are reachable with a
	// handful of inserts instead of hundreds.
	InternalMaxKeys = 3
)

// InvalidPage marks "no child here." Page 0 is a legal child page, so 0
// cannot double as the empty sentinel.
const InvalidPage uint32 = 0xFFFFFFFF

// LeafNodeValueSize, LeafNodeCellSize, and the split counts derive from the
// row layout (table/row.go), so they're computed once here instead of
// hand-carried as literals.
var (
	LeafNodeValueSize = RowSize
	LeafNodeCellSize  = LeafNodeKeySize + LeafNodeValueSize

	leafNodeSpaceForCells = uint32(pager.PageSize) - LeafNodeHeaderSize
	LeafMaxCells          = leafNodeSpaceForCells / LeafNodeCellSize

	// LeafLeftSplitCount/LeafRightSplitCount: of the LeafMaxCells+1 cells
	// considered during a split, the first half (rounded up) stays in the
	// original leaf and the rest moves to the new right sibling.
	LeafLeftSplitCount  = (LeafMaxCells + 1 + 1) / 2
	LeafRightSplitCount = (LeafMaxCells + 1) - LeafLeftSplitCount
)
