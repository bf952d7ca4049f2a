package table

import (
	"encoding/binary"

	"github.com/vpareek2/BitDB/pager"
	"go.uber.org/zap"
)

// NodeType distinguishes a leaf page from an internal page.
type NodeType uint8

const (
	NodeLeaf NodeType = iota
	NodeInternal
)

// Node is a thin typed view over a page's raw bytes — spec §4.2's "node
// codec." It never copies the page into an in-memory mirror; every getter
// and setter reads or writes the page buffer directly, so the on-disk
// layout and the in-memory representation can never drift apart.
type Node struct {
	Page *pager.Page
}

func NewNode(p *pager.Page) Node { return Node{Page: p} }

// --- common header ---

func (n Node) Type() NodeType { return NodeType(n.Page.Data[NodeTypeOffset]) }

func (n Node) SetType(t NodeType) { n.Page.Data[NodeTypeOffset] = byte(t) }

func (n Node) IsRoot() bool { return n.Page.Data[IsRootOffset] != 0 }

func (n Node) SetIsRoot(isRoot bool) {
	if isRoot {
		n.Page.Data[IsRootOffset] = 1
	} else {
		n.Page.Data[IsRootOffset] = 0
	}
}

func (n Node) ParentPage() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[ParentPointerOffset : ParentPointerOffset+ParentPointerSize])
}

func (n Node) SetParentPage(p uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[ParentPointerOffset:ParentPointerOffset+ParentPointerSize], p)
}

// --- leaf layout ---

func (n Node) NumCells() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[LeafNodeNumCellsOffset : LeafNodeNumCellsOffset+LeafNodeNumCellsSize])
}

func (n Node) SetNumCells(c uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[LeafNodeNumCellsOffset:LeafNodeNumCellsOffset+LeafNodeNumCellsSize], c)
}

func (n Node) NextLeaf() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[LeafNodeNextLeafOffset : LeafNodeNextLeafOffset+LeafNodeNextLeafSize])
}

func (n Node) SetNextLeaf(p uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[LeafNodeNextLeafOffset:LeafNodeNextLeafOffset+LeafNodeNextLeafSize], p)
}

func (n Node) cellOffset(i uint32) uint32 {
	return LeafNodeHeaderSize + i*LeafNodeCellSize
}

func (n Node) Key(i uint32) uint32 {
	off := n.cellOffset(i) + LeafNodeKeyOffset
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+LeafNodeKeySize])
}

func (n Node) SetKey(i uint32, key uint32) {
	off := n.cellOffset(i) + LeafNodeKeyOffset
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+LeafNodeKeySize], key)
}

// Value returns the raw row bytes for cell i — a slice into the page, not
// a copy, so writing to it mutates the page directly.
func (n Node) Value(i uint32) []byte {
	off := n.cellOffset(i) + LeafNodeKeySize
	return n.Page.Data[off : off+LeafNodeValueSize]
}

// Cell returns the whole (key ‖ value) span for cell i, for bulk copies
// during a split.
func (n Node) Cell(i uint32) []byte {
	off := n.cellOffset(i)
	return n.Page.Data[off : off+LeafNodeCellSize]
}

// --- internal layout ---

func (n Node) NumKeys() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[InternalNodeNumKeysOffset : InternalNodeNumKeysOffset+InternalNodeNumKeysSize])
}

func (n Node) SetNumKeys(k uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[InternalNodeNumKeysOffset:InternalNodeNumKeysOffset+InternalNodeNumKeysSize], k)
}

func (n Node) RightChild() uint32 {
	return binary.LittleEndian.Uint32(n.Page.Data[InternalNodeRightChildOffset : InternalNodeRightChildOffset+InternalNodeRightChildSize])
}

func (n Node) SetRightChild(p uint32) {
	binary.LittleEndian.PutUint32(n.Page.Data[InternalNodeRightChildOffset:InternalNodeRightChildOffset+InternalNodeRightChildSize], p)
}

func (n Node) internalCellOffset(i uint32) uint32 {
	return InternalNodeHeaderSize + i*InternalNodeCellSize
}

// IKey returns the i'th separator key: the maximum key present in the
// subtree rooted at Child(i).
func (n Node) IKey(i uint32) uint32 {
	off := n.internalCellOffset(i) + InternalNodeChildSize
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+InternalNodeKeySize])
}

func (n Node) SetIKey(i uint32, key uint32) {
	off := n.internalCellOffset(i) + InternalNodeChildSize
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+InternalNodeKeySize], key)
}

// rawChild returns body[i].child without the Child(i) contract's bounds or
// sentinel checks — used internally when shifting cells during a split,
// where a sentinel or out-of-range value may transiently be read before
// being overwritten.
func (n Node) rawChild(i uint32) uint32 {
	off := n.internalCellOffset(i)
	return binary.LittleEndian.Uint32(n.Page.Data[off : off+InternalNodeChildSize])
}

func (n Node) setRawChild(i uint32, page uint32) {
	off := n.internalCellOffset(i)
	binary.LittleEndian.PutUint32(n.Page.Data[off:off+InternalNodeChildSize], page)
}

// Child returns body[i].child for i < NumKeys, RightChild for i == NumKeys,
// and fatally errors for i > NumKeys or a sentinel/missing child — this is
// the contract from spec §4.2: it catches corruption and the "empty
// internal node" case the caller must handle before calling Child.
func (n Node) Child(i uint32, log *zap.SugaredLogger) uint32 {
	numKeys := n.NumKeys()
	var child uint32
	switch {
	case i < numKeys:
		child = n.rawChild(i)
	case i == numKeys:
		child = n.RightChild()
	default:
		log.Fatalf("Tried to access child_num %d > num_keys %d", i, numKeys)
		return 0
	}
	if child == InvalidPage {
		log.Fatalf("Tried to access invalid child page at index %d", i)
	}
	return child
}

// SetChild sets body[i].child for i < NumKeys, or RightChild for
// i == NumKeys. Mirrors Child's contract.
func (n Node) SetChild(i uint32, page uint32) {
	numKeys := n.NumKeys()
	if i == numKeys {
		n.SetRightChild(page)
		return
	}
	n.setRawChild(i, page)
}

// InitializeLeaf zeroes the page and sets it up as an empty non-root leaf.
func InitializeLeaf(p *pager.Page) Node {
	for i := range p.Data {
		p.Data[i] = 0
	}
	n := NewNode(p)
	n.SetType(NodeLeaf)
	n.SetIsRoot(false)
	n.SetNumCells(0)
	n.SetNextLeaf(0)
	return n
}

// InitializeInternal zeroes the page and sets it up as an empty non-root
// internal node. RightChild starts at InvalidPage to distinguish "freshly
// initialized, no children yet" from a legitimate pointer to page 0.
func InitializeInternal(p *pager.Page) Node {
	for i := range p.Data {
		p.Data[i] = 0
	}
	n := NewNode(p)
	n.SetType(NodeInternal)
	n.SetIsRoot(false)
	n.SetNumKeys(0)
	n.SetRightChild(InvalidPage)
	return n
}
