// Package table implements the B+Tree engine: node layout, search, leaf
// insertion with splitting, root promotion, and the cursor abstraction used
// to walk rows in key order. It is the core of vqlite — everything above it
// (REPL, statement parsing) is a thin collaborator driven through this
// package's exported surface.
package table

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gx14ac/vqlite/pager"
	"github.com/pkg/errors"
)

// rootPageNum is fixed: page 0 is always the root, for the lifetime of the
// database file.
const rootPageNum = 0

// Table owns a pager and the root page number of its single B+Tree.
type Table struct {
	pager *pager.Pager
}

// Open opens or creates filename and initializes page 0 as an empty leaf
// root if the file is brand new.
func Open(filename string) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	t := &Table{pager: p}

	if p.NumPages() == 0 {
		root, err := p.GetPage(rootPageNum)
		if err != nil {
			return nil, err
		}
		initLeafNode(root)
		setNodeRoot(root, true)
		slog.Debug("table.Open: initialized empty leaf root", "filename", filename)
	}

	return t, nil
}

// Close flushes every cached page and closes the backing file.
func (t *Table) Close() error {
	slog.Debug("table.Close", "numPages", t.pager.NumPages())
	return t.pager.Close()
}

// InsertResult is the recoverable outcome of an insert, returned up to the
// statement executor instead of a Go error — duplicate keys and table-full
// are expected, user-observable conditions, not faults.
type InsertResult int

const (
	InsertSuccess InsertResult = iota
	InsertDuplicateKey
	InsertTableFull
)

// errInternalNodeFull is the sentinel produced in the split path when a leaf
// split would need to add a child to an already full internal node —
// an acknowledged non-goal. Table.Insert converts it into InsertTableFull
// instead of letting it escape as a fatal error, so callers see a plain
// "table full" outcome rather than a process-ending fault.
var errInternalNodeFull = errors.New("internal node full")

// Insert adds row under key row.ID, returning InsertDuplicateKey without
// modification if the key already exists, and InsertTableFull without
// modification if satisfying the insert would require splitting an
// internal node.
func (t *Table) Insert(row Row) (InsertResult, error) {
	c, err := t.Find(row.ID)
	if err != nil {
		return 0, err
	}

	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return 0, err
	}
	if c.CellNum < leafNumCells(leaf) && leafKey(leaf, c.CellNum) == row.ID {
		return InsertDuplicateKey, nil
	}

	if err := t.leafInsert(c, row.ID, row); err != nil {
		if err == errInternalNodeFull {
			return InsertTableFull, nil
		}
		return 0, err
	}
	return InsertSuccess, nil
}

// Find descends from the root to the leaf that does, or would, contain key
// and returns a cursor positioned there. On an internal node it descends
// into the child covering key via the smallest separator >= key; on a leaf
// it binary-searches for key, landing on the matching cell or the smallest
// index whose key is >= key.
func (t *Table) Find(key uint32) (*Cursor, error) {
	return t.findFrom(rootPageNum, key)
}

func (t *Table) findFrom(pageNum uint32, key uint32) (*Cursor, error) {
	node, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	if nodeType(node) == NodeLeaf {
		numCells := leafNumCells(node)
		cellNum := uint32(sort.Search(int(numCells), func(i int) bool {
			return leafKey(node, uint32(i)) >= key
		}))
		return &Cursor{table: t, PageNum: pageNum, CellNum: cellNum}, nil
	}

	childPage := internalNodeFindChild(node, key)
	return t.findFrom(childPage, key)
}

// internalNodeFindChild returns the page of the child of node that should
// contain key: the smallest-separator-keyed child whose key is >= key, or
// the right child if no separator qualifies. internalNodeFindChildIndex
// uses the corrected midpoint (min+max)/2 so multi-leaf lookups land on
// the right child even as the separator set grows.
func internalNodeFindChild(node *page, key uint32) uint32 {
	idx := internalNodeFindChildIndex(node, key)
	numKeys := internalNumKeys(node)
	if idx == numKeys {
		return internalRightChild(node)
	}
	return internalChild(node, idx)
}

func internalNodeFindChildIndex(node *page, key uint32) uint32 {
	numKeys := internalNumKeys(node)
	minIndex, maxIndex := uint32(0), numKeys
	for minIndex != maxIndex {
		mid := (minIndex + maxIndex) / 2
		if internalKey(node, mid) >= key {
			maxIndex = mid
		} else {
			minIndex = mid + 1
		}
	}
	return minIndex
}

// Start returns a cursor positioned at the first row of the table, i.e. the
// smallest key, which is always found by searching for key 0.
func (t *Table) Start() (*Cursor, error) {
	c, err := t.Find(0)
	if err != nil {
		return nil, err
	}

	leaf, err := t.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	c.EndOfTable = leafNumCells(leaf) == 0
	return c, nil
}

// PrintTree writes a recursive, indented dump of the tree rooted at
// rootPageNum to w, in the format the .btree meta-command prints.
func (t *Table) PrintTree(w *strings.Builder) error {
	return t.printTree(w, rootPageNum, 0)
}

func (t *Table) printTree(w *strings.Builder, pageNum uint32, depth int) error {
	node, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}

	indent := strings.Repeat("  ", depth)
	switch nodeType(node) {
	case NodeLeaf:
		numCells := leafNumCells(node)
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, leafKey(node, i))
		}
	case NodeInternal:
		numKeys := internalNumKeys(node)
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent, numKeys)
		for i := uint32(0); i < numKeys; i++ {
			if err := t.printTree(w, internalChild(node, i), depth+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  - key %d\n", indent, internalKey(node, i))
		}
		if err := t.printTree(w, internalRightChild(node), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// ConstantEntry is one NAME: value line of the .constants dump.
type ConstantEntry struct {
	Name  string
	Value int
}

// Constants lists the derived layout constants printed by .constants, in
// the order a reader would want them: row, then common header, then leaf
// layout outward from it.
func Constants() []ConstantEntry {
	return []ConstantEntry{
		{"ROW_SIZE", RowSize},
		{"COMMON_NODE_HEADER_SIZE", CommonNodeHeaderSize},
		{"LEAF_NODE_HEADER_SIZE", LeafNodeHeaderSize},
		{"LEAF_NODE_CELL_SIZE", LeafNodeCellSize},
		{"LEAF_NODE_SPACE_FOR_CELLS", LeafNodeSpaceForCells},
		{"LEAF_NODE_MAX_CELLS", LeafNodeMaxCells},
	}
}
