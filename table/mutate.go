package table

// leafInsert writes (key, row) into the leaf cursor.PageNum points at,
// splitting if the leaf is full (spec §4.4.1, §4.4.2).
func (t *Table) leafInsert(cursor *Cursor, key uint32, row Row) error {
	page, err := t.pager.Get(cursor.PageNum)
	if err != nil {
		return err
	}
	node := NewNode(page)
	if node.NumCells() >= LeafMaxCells {
		return t.leafSplitAndInsert(cursor, key, row)
	}

	numCells := node.NumCells()
	for i := numCells; i > cursor.CellNum; i-- {
		copy(node.Cell(i), node.Cell(i-1))
	}
	node.SetNumCells(numCells + 1)
	node.SetKey(cursor.CellNum, key)
	return SerializeRow(row, node.Value(cursor.CellNum))
}

// leafSplitAndInsert splits a full leaf around the virtual sequence of
// LeafMaxCells+1 cells formed by inserting (key, row) at cursor.CellNum,
// then propagates the new sibling up through the parent (spec §4.4.2).
func (t *Table) leafSplitAndInsert(cursor *Cursor, key uint32, row Row) error {
	oldPageNum := cursor.PageNum
	oldPage, err := t.pager.Get(oldPageNum)
	if err != nil {
		return err
	}
	oldNode := NewNode(oldPage)
	oldMax, err := t.maxKey(oldPageNum)
	if err != nil {
		return err
	}

	newPageNum := t.pager.GetUnusedPageNum()
	newPage, err := t.pager.Get(newPageNum)
	if err != nil {
		return err
	}
	newNode := InitializeLeaf(newPage)
	newNode.SetNextLeaf(oldNode.NextLeaf())
	oldNode.SetNextLeaf(newPageNum)
	newNode.SetParentPage(oldNode.ParentPage())

	for i := int(LeafMaxCells); i >= 0; i-- {
		var dest Node
		var indexWithin uint32
		if uint32(i) >= LeafLeftSplitCount {
			dest = newNode
			indexWithin = uint32(i) - LeafLeftSplitCount
		} else {
			dest = oldNode
			indexWithin = uint32(i)
		}

		switch {
		case uint32(i) == cursor.CellNum:
			dest.SetKey(indexWithin, key)
			if err := SerializeRow(row, dest.Value(indexWithin)); err != nil {
				return err
			}
		case uint32(i) > cursor.CellNum:
			copy(dest.Cell(indexWithin), oldNode.Cell(uint32(i)-1))
		default:
			copy(dest.Cell(indexWithin), oldNode.Cell(uint32(i)))
		}
	}
	oldNode.SetNumCells(LeafLeftSplitCount)
	newNode.SetNumCells(LeafRightSplitCount)

	if oldNode.IsRoot() {
		return t.createNewRoot(newPageNum)
	}

	parentPageNum := oldNode.ParentPage()
	newOldMax, err := t.maxKey(oldPageNum)
	if err != nil {
		return err
	}
	if err := t.updateInternalKey(parentPageNum, oldMax, newOldMax); err != nil {
		return err
	}
	return t.internalInsert(parentPageNum, newPageNum)
}

// createNewRoot is invoked when the root (page 0) has just split and
// rightChildPageNum holds the overflow half. The root's page number must
// never change, so the old root's content is copied to a fresh page that
// becomes the new root's left child (spec §4.4.3).
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	rootPage, err := t.pager.Get(t.rootPageNum)
	if err != nil {
		return err
	}

	leftChildPageNum := t.pager.GetUnusedPageNum()
	leftPage, err := t.pager.Get(leftChildPageNum)
	if err != nil {
		return err
	}
	leftPage.Data = rootPage.Data
	leftNode := NewNode(leftPage)
	leftNode.SetIsRoot(false)

	if leftNode.Type() == NodeInternal {
		numKeys := leftNode.NumKeys()
		for i := uint32(0); i <= numKeys; i++ {
			childPageNum := leftNode.Child(i, t.log)
			childPage, err := t.pager.Get(childPageNum)
			if err != nil {
				return err
			}
			NewNode(childPage).SetParentPage(leftChildPageNum)
		}
	}

	rootNode := InitializeInternal(rootPage)
	rootNode.SetIsRoot(true)
	rootNode.SetNumKeys(1)
	rootNode.SetChild(0, leftChildPageNum)
	leftMax, err := t.maxKey(leftChildPageNum)
	if err != nil {
		return err
	}
	rootNode.SetIKey(0, leftMax)
	rootNode.SetRightChild(rightChildPageNum)

	leftNode.SetParentPage(t.rootPageNum)
	rightPage, err := t.pager.Get(rightChildPageNum)
	if err != nil {
		return err
	}
	NewNode(rightPage).SetParentPage(t.rootPageNum)
	return nil
}

// internalInsert registers childPageNum (keyed by its own max key) as a
// child of the internal node at parentPageNum (spec §4.4.4).
func (t *Table) internalInsert(parentPageNum uint32, childPageNum uint32) error {
	parentPage, err := t.pager.Get(parentPageNum)
	if err != nil {
		return err
	}
	parent := NewNode(parentPage)

	if parent.NumKeys() >= InternalMaxKeys {
		return t.internalSplitAndInsert(parentPageNum, childPageNum)
	}

	childPage, err := t.pager.Get(childPageNum)
	if err != nil {
		return err
	}
	child := NewNode(childPage)
	childMaxKey, err := t.maxKey(childPageNum)
	if err != nil {
		return err
	}

	rightChildPageNum := parent.RightChild()
	if rightChildPageNum == InvalidPage {
		parent.SetRightChild(childPageNum)
		child.SetParentPage(parentPageNum)
		return nil
	}

	rightChildMaxKey, err := t.maxKey(rightChildPageNum)
	if err != nil {
		return err
	}
	originalNumKeys := parent.NumKeys()
	index := internalFindChildIndex(parent, childMaxKey)
	parent.SetNumKeys(originalNumKeys + 1)

	if childMaxKey > rightChildMaxKey {
		parent.SetChild(originalNumKeys, rightChildPageNum)
		parent.SetIKey(originalNumKeys, rightChildMaxKey)
		parent.SetRightChild(childPageNum)
	} else {
		for i := originalNumKeys; i > index; i-- {
			parent.setRawChild(i, parent.rawChild(i-1))
			parent.SetIKey(i, parent.IKey(i-1))
		}
		parent.setRawChild(index, childPageNum)
		parent.SetIKey(index, childMaxKey)
	}
	child.SetParentPage(parentPageNum)
	return nil
}

// internalSplitAndInsert splits an overflowing internal node into old and
// new siblings around the median, then inserts childPageNum into whichever
// side covers its max key (spec §4.4.5).
func (t *Table) internalSplitAndInsert(oldPageNum uint32, childPageNum uint32) error {
	oldPage, err := t.pager.Get(oldPageNum)
	if err != nil {
		return err
	}
	oldNode := NewNode(oldPage)
	oldMax, err := t.maxKey(oldPageNum)
	if err != nil {
		return err
	}
	childMax, err := t.maxKey(childPageNum)
	if err != nil {
		return err
	}

	newPageNum := t.pager.GetUnusedPageNum()
	newPage, err := t.pager.Get(newPageNum)
	if err != nil {
		return err
	}
	InitializeInternal(newPage)

	splittingRoot := oldNode.IsRoot()
	var parentPageNum uint32
	if splittingRoot {
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		rootPage, err := t.pager.Get(t.rootPageNum)
		if err != nil {
			return err
		}
		oldPageNum = NewNode(rootPage).Child(0, t.log)
		oldPage, err = t.pager.Get(oldPageNum)
		if err != nil {
			return err
		}
		oldNode = NewNode(oldPage)
		parentPageNum = t.rootPageNum
	} else {
		parentPageNum = oldNode.ParentPage()
	}

	if err := t.internalInsert(newPageNum, oldNode.RightChild()); err != nil {
		return err
	}
	oldNode.SetRightChild(InvalidPage)

	for i := int(InternalMaxKeys) - 1; i > int(InternalMaxKeys)/2; i-- {
		childToMove := oldNode.rawChild(uint32(i))
		if err := t.internalInsert(newPageNum, childToMove); err != nil {
			return err
		}
		oldNode.SetNumKeys(oldNode.NumKeys() - 1)
	}

	oldNumKeys := oldNode.NumKeys()
	promoted := oldNode.rawChild(oldNumKeys - 1)
	oldNode.SetRightChild(promoted)
	oldNode.SetNumKeys(oldNumKeys - 1)

	oldMaxAfter, err := t.maxKey(oldPageNum)
	if err != nil {
		return err
	}
	destPageNum := newPageNum
	if childMax < oldMaxAfter {
		destPageNum = oldPageNum
	}
	if err := t.internalInsert(destPageNum, childPageNum); err != nil {
		return err
	}

	newOldMax, err := t.maxKey(oldPageNum)
	if err != nil {
		return err
	}
	if err := t.updateInternalKey(parentPageNum, oldMax, newOldMax); err != nil {
		return err
	}
	if !splittingRoot {
		return t.internalInsert(parentPageNum, newPageNum)
	}
	return nil
}

// updateInternalKey rewrites the separator key that used to read oldKey to
// newKey, locating it by the same binary search used for descent (spec
// §4.4.6). Used to propagate an updated subtree maximum after a left-side
// split.
func (t *Table) updateInternalKey(nodePageNum uint32, oldKey uint32, newKey uint32) error {
	page, err := t.pager.Get(nodePageNum)
	if err != nil {
		return err
	}
	node := NewNode(page)
	idx := internalFindChildIndex(node, oldKey)
	node.SetIKey(idx, newKey)
	return nil
}
