// Package exec drives cursors to insert and scan rows, implementing the
// Executed stage of the statement lifecycle (Parsed -> Prepared ->
// Executed). It knows nothing about parsing; it consumes already-validated
// rows and produces a small result discriminant for its caller to map onto
// the fixed diagnostic strings at the prompt.
package exec

import (
	"fmt"

	"vqlite/node"
	"vqlite/row"
	"vqlite/table"
)

// Result is the outcome of an executed statement.
type Result int

const (
	Success Result = iota
	TableFull
)

// Insert appends row into t. It fails with TableFull if the root leaf is
// already at capacity; there is no splitting, so a full root is reported as
// TableFull here rather than reaching leafInsert, which returns an error
// for a full node.
func Insert(r row.Row, t *table.Table) (Result, error) {
	root, err := t.RootNode()
	if err != nil {
		return Success, err
	}
	if node.NumCells(root) >= node.MaxCells {
		return TableFull, nil
	}

	cursor, err := table.End(t)
	if err != nil {
		return Success, err
	}

	if err := leafInsert(cursor, r); err != nil {
		return Success, err
	}
	return Success, nil
}

// leafInsert writes key/value into the cursor's leaf at CellNum, shifting
// any trailing cells one slot toward the end first. Cells are copied from
// tail to head so each cell is moved before its old slot is overwritten.
func leafInsert(cursor *table.Cursor, r row.Row) error {
	page, err := cursor.Table.Pager.GetPage(cursor.PageNum)
	if err != nil {
		return fmt.Errorf("exec: leaf insert: %w", err)
	}

	numCells := node.NumCells(page)
	if numCells >= node.MaxCells {
		return fmt.Errorf("exec: leaf insert: node full")
	}

	if cursor.CellNum < numCells {
		for i := numCells; i > cursor.CellNum; i-- {
			copy(node.Cell(page, i), node.Cell(page, i-1))
		}
	}

	node.SetNumCells(page, numCells+1)
	node.SetKeyAt(page, cursor.CellNum, r.ID)
	return row.Serialize(r, node.Value(page, cursor.CellNum))
}

// Row is one emitted record from Select: the id, username and email
// decoded from a cell's value. The cell's key is not read; Insert always
// writes it equal to ID.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Select scans every row in insertion order and returns them. Cells are
// stored in the order they were inserted, not sorted by key.
func Select(t *table.Table) ([]Row, Result, error) {
	cursor, err := table.Start(t)
	if err != nil {
		return nil, Success, err
	}

	var rows []Row
	for !cursor.EndOfTable {
		buf, err := cursor.Value()
		if err != nil {
			return nil, Success, err
		}
		r, err := row.Deserialize(buf)
		if err != nil {
			return nil, Success, err
		}
		rows = append(rows, Row{ID: r.ID, Username: r.Username, Email: r.Email})

		if err := cursor.Advance(); err != nil {
			return nil, Success, err
		}
	}
	return rows, Success, nil
}
