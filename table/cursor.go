package table

// Cursor is a (page, cell) position used to read or insert. EndOfTable is
// set once a select scan has walked past the last row.
type Cursor struct {
	table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Advance moves the cursor to the next cell in key order, following the
// leaf's next_leaf pointer once the current leaf is exhausted.
func (c *Cursor) Advance() error {
	node, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	c.CellNum++
	if c.CellNum < leafNumCells(node) {
		return nil
	}

	next := leafNextLeaf(node)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.PageNum = next
	c.CellNum = 0
	return nil
}

// Value returns the byte region of the current cell's row payload.
func (c *Cursor) Value() ([]byte, error) {
	node, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return leafValue(node, c.CellNum), nil
}

// Key returns the key at the cursor's current cell.
func (c *Cursor) Key() (uint32, error) {
	node, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return 0, err
	}
	return leafKey(node, c.CellNum), nil
}
