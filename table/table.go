// Package table binds a pager to a fixed root page and provides the cursor
// abstraction used to read and write rows. There is a single table, and
// its root is always page 0.
package table

import (
	"fmt"

	"vqlite/node"
	"vqlite/pager"
)

// RootPageNum is fixed for the single-table system.
const RootPageNum = 0

// Table binds a pager to its root page.
type Table struct {
	Pager *pager.Pager
}

// Open opens filename via the pager and ensures the root page exists. If
// the file was empty, page 0 is initialized as an empty leaf before any
// caller observes it.
func Open(filename string) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	t := &Table{Pager: p}

	if p.NumPages() == 0 {
		root, err := p.GetPage(RootPageNum)
		if err != nil {
			return nil, err
		}
		node.InitializeLeaf(root)
	}

	return t, nil
}

// Close flushes the pager and releases the table.
func (t *Table) Close() error {
	return t.Pager.Close()
}

// RootNode returns the root page's buffer.
func (t *Table) RootNode() (*node.Page, error) {
	return t.Pager.GetPage(RootPageNum)
}

// Cursor is a positional iterator over rows, addressing a (page, cell)
// pair. It is the sole read/write port onto the table.
type Cursor struct {
	Table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Start returns a cursor positioned at the first cell of the root.
// EndOfTable is true immediately if the root has zero cells.
func Start(t *Table) (*Cursor, error) {
	root, err := t.RootNode()
	if err != nil {
		return nil, err
	}
	return &Cursor{
		Table:      t,
		PageNum:    RootPageNum,
		CellNum:    0,
		EndOfTable: node.NumCells(root) == 0,
	}, nil
}

// End returns a cursor positioned one past the root's last cell, the
// insertion point for append-style writes.
func End(t *Table) (*Cursor, error) {
	root, err := t.RootNode()
	if err != nil {
		return nil, err
	}
	return &Cursor{
		Table:      t,
		PageNum:    RootPageNum,
		CellNum:    node.NumCells(root),
		EndOfTable: true,
	}, nil
}

// Value returns the value slot of the cursor's current cell, for both
// reads and in-place writes via the row codec.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return nil, fmt.Errorf("cursor: value: %w", err)
	}
	return node.Value(page, c.CellNum), nil
}

// Advance moves the cursor to the next cell. Once internal nodes exist
// this must chase leaf-to-leaf links; for now only one leaf exists, so
// reaching its cell count ends the table.
func (c *Cursor) Advance() error {
	page, err := c.Table.Pager.GetPage(c.PageNum)
	if err != nil {
		return fmt.Errorf("cursor: advance: %w", err)
	}
	c.CellNum++
	if c.CellNum >= node.NumCells(page) {
		c.EndOfTable = true
	}
	return nil
}
