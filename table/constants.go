package table

import "github.com/gx14ac/vqlite/pager"

// Node types, stored as the first byte of every page.
type NodeType uint8

const (
	NodeLeaf NodeType = iota
	NodeInternal
)

// Common node header layout (first bytes of every page, leaf or internal).
const (
	nodeTypeSize   = 1
	nodeTypeOffset = 0

	isRootSize   = 1
	isRootOffset = nodeTypeOffset + nodeTypeSize

	parentPointerSize   = 4
	parentPointerOffset = isRootOffset + isRootSize

	CommonNodeHeaderSize = nodeTypeSize + isRootSize + parentPointerSize
)

// Leaf node header and cell layout.
const (
	leafNodeNumCellsSize   = 4
	leafNodeNumCellsOffset = CommonNodeHeaderSize

	leafNodeNextLeafSize   = 4
	leafNodeNextLeafOffset = leafNodeNumCellsOffset + leafNodeNumCellsSize

	LeafNodeHeaderSize = CommonNodeHeaderSize + leafNodeNumCellsSize + leafNodeNextLeafSize

	leafNodeKeySize   = 4
	leafNodeKeyOffset = 0
	leafNodeValueSize = RowSize
	leafNodeValueOffset = leafNodeKeySize

	LeafNodeCellSize = leafNodeKeySize + leafNodeValueSize

	LeafNodeSpaceForCells = pager.PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize

	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2 + (LeafNodeMaxCells+1)%2
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1) - LeafNodeRightSplitCount
)

// Internal node header and cell layout. InternalNodeMaxCells is fixed at 3
// (not derived from page capacity) so that tree-depth behavior — and the
// internal-split-unimplemented non-goal — is exercised with small inserts,
// matching the reference implementation this system is modeled on.
const (
	internalNodeNumKeysSize   = 4
	internalNodeNumKeysOffset = CommonNodeHeaderSize

	internalNodeRightChildSize   = 4
	internalNodeRightChildOffset = internalNodeNumKeysOffset + internalNodeNumKeysSize

	InternalNodeHeaderSize = CommonNodeHeaderSize + internalNodeNumKeysSize + internalNodeRightChildSize

	internalNodeChildSize   = 4
	internalNodeChildOffset = 0
	internalNodeKeySize     = 4
	internalNodeKeyOffset   = internalNodeChildSize

	InternalNodeCellSize = internalNodeChildSize + internalNodeKeySize

	InternalNodeMaxCells = 3
)
