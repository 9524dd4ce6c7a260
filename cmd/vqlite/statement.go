package main

import "vqlite/row"

// StatementType names which operation a parsed line requests.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// PrepareResult is the outcome of turning a line into a Statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareNegativeID
	PrepareStringTooLong
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

// Statement is a parsed, not-yet-executed command.
type Statement struct {
	Type        StatementType
	RowToInsert row.Row
}
