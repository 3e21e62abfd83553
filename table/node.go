package table

import (
	"encoding/binary"

	"github.com/gx14ac/vqlite/pager"
)

// page is the raw byte buffer the pager hands out. Node accessors are thin,
// inlined field views over it — they never copy the buffer, so mutations
// through an accessor are visible to whoever flushes the page.
type page = [pager.PageSize]byte

func nodeType(p *page) NodeType {
	return NodeType(p[nodeTypeOffset])
}

func setNodeType(p *page, t NodeType) {
	p[nodeTypeOffset] = byte(t)
}

func isNodeRoot(p *page) bool {
	return p[isRootOffset] != 0
}

func setNodeRoot(p *page, isRoot bool) {
	if isRoot {
		p[isRootOffset] = 1
	} else {
		p[isRootOffset] = 0
	}
}

func parentPage(p *page) uint32 {
	return binary.LittleEndian.Uint32(p[parentPointerOffset : parentPointerOffset+parentPointerSize])
}

func setParentPage(p *page, parent uint32) {
	binary.LittleEndian.PutUint32(p[parentPointerOffset:parentPointerOffset+parentPointerSize], parent)
}

// --- leaf node accessors ---

func leafNumCells(p *page) uint32 {
	return binary.LittleEndian.Uint32(p[leafNodeNumCellsOffset : leafNodeNumCellsOffset+leafNodeNumCellsSize])
}

func setLeafNumCells(p *page, n uint32) {
	binary.LittleEndian.PutUint32(p[leafNodeNumCellsOffset:leafNodeNumCellsOffset+leafNodeNumCellsSize], n)
}

func leafNextLeaf(p *page) uint32 {
	return binary.LittleEndian.Uint32(p[leafNodeNextLeafOffset : leafNodeNextLeafOffset+leafNodeNextLeafSize])
}

func setLeafNextLeaf(p *page, next uint32) {
	binary.LittleEndian.PutUint32(p[leafNodeNextLeafOffset:leafNodeNextLeafOffset+leafNodeNextLeafSize], next)
}

func leafCellOffset(cellNum uint32) uint32 {
	return LeafNodeHeaderSize + cellNum*LeafNodeCellSize
}

func leafCell(p *page, cellNum uint32) []byte {
	off := leafCellOffset(cellNum)
	return p[off : off+LeafNodeCellSize]
}

func leafKey(p *page, cellNum uint32) uint32 {
	cell := leafCell(p, cellNum)
	return binary.LittleEndian.Uint32(cell[leafNodeKeyOffset : leafNodeKeyOffset+leafNodeKeySize])
}

func setLeafKey(p *page, cellNum uint32, key uint32) {
	cell := leafCell(p, cellNum)
	binary.LittleEndian.PutUint32(cell[leafNodeKeyOffset:leafNodeKeyOffset+leafNodeKeySize], key)
}

func leafValue(p *page, cellNum uint32) []byte {
	cell := leafCell(p, cellNum)
	return cell[leafNodeValueOffset : leafNodeValueOffset+leafNodeValueSize]
}

// initLeafNode resets p to an empty leaf node. Callers must do this before
// first use of any freshly allocated page.
func initLeafNode(p *page) {
	setNodeType(p, NodeLeaf)
	setNodeRoot(p, false)
	setLeafNumCells(p, 0)
	setLeafNextLeaf(p, 0)
}

// --- internal node accessors ---

func internalNumKeys(p *page) uint32 {
	return binary.LittleEndian.Uint32(p[internalNodeNumKeysOffset : internalNodeNumKeysOffset+internalNodeNumKeysSize])
}

func setInternalNumKeys(p *page, n uint32) {
	binary.LittleEndian.PutUint32(p[internalNodeNumKeysOffset:internalNodeNumKeysOffset+internalNodeNumKeysSize], n)
}

func internalRightChild(p *page) uint32 {
	return binary.LittleEndian.Uint32(p[internalNodeRightChildOffset : internalNodeRightChildOffset+internalNodeRightChildSize])
}

func setInternalRightChild(p *page, child uint32) {
	binary.LittleEndian.PutUint32(p[internalNodeRightChildOffset:internalNodeRightChildOffset+internalNodeRightChildSize], child)
}

func internalCellOffset(cellNum uint32) uint32 {
	return InternalNodeHeaderSize + cellNum*InternalNodeCellSize
}

func internalCell(p *page, cellNum uint32) []byte {
	off := internalCellOffset(cellNum)
	return p[off : off+InternalNodeCellSize]
}

func internalChild(p *page, cellNum uint32) uint32 {
	cell := internalCell(p, cellNum)
	return binary.LittleEndian.Uint32(cell[internalNodeChildOffset : internalNodeChildOffset+internalNodeChildSize])
}

func setInternalChild(p *page, cellNum uint32, child uint32) {
	cell := internalCell(p, cellNum)
	binary.LittleEndian.PutUint32(cell[internalNodeChildOffset:internalNodeChildOffset+internalNodeChildSize], child)
}

func internalKey(p *page, cellNum uint32) uint32 {
	cell := internalCell(p, cellNum)
	return binary.LittleEndian.Uint32(cell[internalNodeKeyOffset : internalNodeKeyOffset+internalNodeKeySize])
}

func setInternalKey(p *page, cellNum uint32, key uint32) {
	cell := internalCell(p, cellNum)
	binary.LittleEndian.PutUint32(cell[internalNodeKeyOffset:internalNodeKeyOffset+internalNodeKeySize], key)
}

// initInternalNode resets p to an empty internal node.
func initInternalNode(p *page) {
	setNodeType(p, NodeInternal)
	setNodeRoot(p, false)
	setInternalNumKeys(p, 0)
	setInternalRightChild(p, 0)
}

// getNodeMaxKey returns the largest key reachable under p: the last cell's
// key for a leaf, the last separator key for an internal node.
func getNodeMaxKey(p *page) uint32 {
	if nodeType(p) == NodeLeaf {
		return leafKey(p, leafNumCells(p)-1)
	}
	return internalKey(p, internalNumKeys(p)-1)
}
