package table

// leafInsert writes (key, row) at cursor.CellNum, shifting later cells
// right by one, or delegates to leafSplitAndInsert once the leaf is full.
func (t *Table) leafInsert(c *Cursor, key uint32, row Row) error {
	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	numCells := leafNumCells(leaf)
	if numCells >= LeafNodeMaxCells {
		return t.leafSplitAndInsert(c, key, row)
	}

	for i := numCells; i > c.CellNum; i-- {
		copyLeafCell(leaf, i, leaf, i-1)
	}

	setLeafKey(leaf, c.CellNum, key)
	if err := SerializeRow(row, leafValue(leaf, c.CellNum)); err != nil {
		return err
	}
	setLeafNumCells(leaf, numCells+1)
	return nil
}

// leafSplitAndInsert splits a full leaf into itself (the left half) and a
// freshly allocated right sibling, inserting (key, row) into whichever half
// it belongs in, then promotes the split up to the parent — or to a brand
// new root, if the leaf being split was the root.
func (t *Table) leafSplitAndInsert(c *Cursor, key uint32, row Row) error {
	oldNode, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}
	oldMaxBeforeSplit := getNodeMaxKey(oldNode)
	wasRoot := isNodeRoot(oldNode)
	oldParent := parentPage(oldNode)

	// A full parent cannot take the new leaf; refuse before anything is
	// allocated or rewritten so the insert leaves the tree unchanged.
	if !wasRoot {
		parent, err := t.pager.GetPage(oldParent)
		if err != nil {
			return err
		}
		if internalNumKeys(parent) >= InternalNodeMaxCells {
			return errInternalNodeFull
		}
	}

	newPageNum := t.pager.UnusedPageNum()
	newNode, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	initLeafNode(newNode)
	setParentPage(newNode, oldParent)

	setLeafNextLeaf(newNode, leafNextLeaf(oldNode))
	setLeafNextLeaf(oldNode, newPageNum)

	var rowBuf [RowSize]byte
	if err := SerializeRow(row, rowBuf[:]); err != nil {
		return err
	}

	for i := int(LeafNodeMaxCells); i >= 0; i-- {
		var dest *page
		if uint32(i) >= LeafNodeLeftSplitCount {
			dest = newNode
		} else {
			dest = oldNode
		}
		destIndex := uint32(i) % LeafNodeLeftSplitCount

		switch {
		case uint32(i) == c.CellNum:
			setLeafKey(dest, destIndex, key)
			copy(leafValue(dest, destIndex), rowBuf[:])
		case uint32(i) > c.CellNum:
			copyLeafCell(dest, destIndex, oldNode, uint32(i)-1)
		default:
			copyLeafCell(dest, destIndex, oldNode, uint32(i))
		}
	}

	setLeafNumCells(oldNode, LeafNodeLeftSplitCount)
	setLeafNumCells(newNode, LeafNodeRightSplitCount)

	if wasRoot {
		return t.createNewRoot(newPageNum)
	}

	newMax := getNodeMaxKey(oldNode)
	if err := t.updateInternalNodeKey(oldParent, oldMaxBeforeSplit, newMax); err != nil {
		return err
	}
	return t.internalNodeInsert(oldParent, newPageNum)
}

// createNewRoot replaces the current root page with a new internal node
// with two children: a copy of the old root (left) and rightChildPageNum
// (right).
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	root, err := t.pager.GetPage(rootPageNum)
	if err != nil {
		return err
	}
	rightChild, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}

	leftPageNum := t.pager.UnusedPageNum()
	left, err := t.pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}

	// The old root's contents become the left child, verbatim.
	*left = *root
	setNodeRoot(left, false)
	setParentPage(left, rootPageNum)

	initInternalNode(root)
	setNodeRoot(root, true)
	setInternalNumKeys(root, 1)
	setInternalChild(root, 0, leftPageNum)
	setInternalKey(root, 0, getNodeMaxKey(left))
	setInternalRightChild(root, rightChildPageNum)

	setParentPage(rightChild, rootPageNum)
	return nil
}

// internalNodeInsert inserts childPageNum into parentPageNum's cells,
// keyed by the child's max key, replacing the right child if the new
// child's max key exceeds it. Fails (errInternalNodeFull) if the parent
// is already at InternalNodeMaxCells — internal-node splitting is an
// acknowledged non-goal.
func (t *Table) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parent, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	child, err := t.pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	childMax := getNodeMaxKey(child)

	originalNumKeys := internalNumKeys(parent)
	if originalNumKeys >= InternalNodeMaxCells {
		return errInternalNodeFull
	}

	index := internalNodeFindChildIndex(parent, childMax)
	setInternalNumKeys(parent, originalNumKeys+1)

	rightChildPageNum := internalRightChild(parent)
	rightChild, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}

	if childMax > getNodeMaxKey(rightChild) {
		setInternalChild(parent, originalNumKeys, rightChildPageNum)
		setInternalKey(parent, originalNumKeys, getNodeMaxKey(rightChild))
		setInternalRightChild(parent, childPageNum)
	} else {
		for i := originalNumKeys; i > index; i-- {
			copyInternalCell(parent, i, parent, i-1)
		}
		setInternalChild(parent, index, childPageNum)
		setInternalKey(parent, index, childMax)
	}

	setParentPage(child, parentPageNum)
	return nil
}

// updateInternalNodeKey overwrites the separator equal to oldKey with
// newKey, used after a child's max key changes because of a split.
func (t *Table) updateInternalNodeKey(parentPageNum, oldKey, newKey uint32) error {
	parent, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	idx := internalNodeFindChildIndex(parent, oldKey)
	setInternalKey(parent, idx, newKey)
	return nil
}

func copyLeafCell(dst *page, dstIdx uint32, src *page, srcIdx uint32) {
	copy(leafCell(dst, dstIdx), leafCell(src, srcIdx))
}

func copyInternalCell(dst *page, dstIdx uint32, src *page, srcIdx uint32) {
	copy(internalCell(dst, dstIdx), internalCell(src, srcIdx))
}
