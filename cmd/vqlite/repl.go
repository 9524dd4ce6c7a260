package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vqlite/exec"
	"vqlite/node"
	"vqlite/row"
	"vqlite/table"
)

// errExit signals that the user typed .exit; run() returns it to tell its
// caller to close the table and stop, distinguishing a clean shutdown from
// a read failure.
var errExit = errors.New("exit")

// errReadingInput is returned to main, which prints its message verbatim
// and exits with failure.
var errReadingInput = errors.New("Error reading input")

// run drives the prompt loop over in and out until .exit or a read error.
// It is split out from main so tests can feed scripted input without a
// real stdin/stdout.
func run(in io.Reader, out io.Writer, t *table.Table) error {
	reader := bufio.NewReader(in)

	for {
		printPrompt(out)

		line, err := readInput(reader)
		if err != nil {
			return errReadingInput
		}

		if strings.HasPrefix(line, ".") {
			if line == ".exit" {
				return errExit
			}
			switch doMetaCommand(line, out, t) {
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognizedCommand:
				fmt.Fprintf(out, "Unrecognized command '%s'.\n", line)
				continue
			}
		}

		var stmt Statement
		switch prepareStatement(line, &stmt) {
		case PrepareSuccess:
			// fall through to execution
		case PrepareNegativeID:
			fmt.Fprintln(out, "ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Fprintln(out, "String is too long.")
			continue
		case PrepareSyntaxError:
			fmt.Fprintln(out, "Syntax error. Could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Fprintf(out, "Unrecognized keyword at start of '%s'.\n", line)
			continue
		}

		if err := executeStatement(&stmt, out, t); err != nil {
			return err
		}
	}
}

// doMetaCommand handles a line starting with '.', other than .exit which
// run() intercepts directly since it must stop the loop rather than
// continue it.
func doMetaCommand(line string, out io.Writer, t *table.Table) MetaCommandResult {
	switch line {
	case ".constants":
		printConstants(out)
		return MetaCommandSuccess
	case ".btree":
		printLeaf(out, t)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}

func printConstants(out io.Writer) {
	fmt.Fprintln(out, "ROW_SIZE:", row.Size)
	fmt.Fprintln(out, "COMMON_NODE_HEADER_SIZE:", node.CommonHeaderSize)
	fmt.Fprintln(out, "LEAF_NODE_HEADER_SIZE:", node.HeaderSize)
	fmt.Fprintln(out, "LEAF_NODE_CELL_SIZE:", node.CellSize)
	fmt.Fprintln(out, "LEAF_NODE_SPACE_FOR_CELLS:", node.SpaceForCells)
	fmt.Fprintln(out, "LEAF_NODE_MAX_CELLS:", node.MaxCells)
}

func printLeaf(out io.Writer, t *table.Table) {
	root, err := t.RootNode()
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return
	}
	numCells := node.NumCells(root)
	fmt.Fprintf(out, "leaf (size %d)\n", numCells)
	for i := uint32(0); i < numCells; i++ {
		fmt.Fprintf(out, "  - %d : %d\n", i, node.KeyAt(root, i))
	}
}

// prepareStatement parses line into stmt, validating the insert grammar's
// id/username/email caps.
func prepareStatement(line string, stmt *Statement) PrepareResult {
	if strings.HasPrefix(line, "insert") {
		return prepareInsert(line, stmt)
	}
	if line == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess
	}
	return PrepareUnrecognizedStatement
}

func prepareInsert(line string, stmt *Statement) PrepareResult {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return PrepareSyntaxError
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > row.UsernameSize || len(email) > row.EmailSize {
		return PrepareStringTooLong
	}

	stmt.Type = StatementInsert
	stmt.RowToInsert = row.Row{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}

func executeStatement(stmt *Statement, out io.Writer, t *table.Table) error {
	switch stmt.Type {
	case StatementInsert:
		result, err := exec.Insert(stmt.RowToInsert, t)
		if err != nil {
			return err
		}
		switch result {
		case exec.TableFull:
			fmt.Fprintln(out, "Error: Table full.")
		case exec.Success:
			fmt.Fprintln(out, "Executed.")
		}
	case StatementSelect:
		rows, _, err := exec.Select(t)
		if err != nil {
			return err
		}
		for _, r := range rows {
			fmt.Fprintf(out, "(%d, %s, %s)\n", r.ID, r.Username, r.Email)
		}
		fmt.Fprintln(out, "Executed.")
	}
	return nil
}
