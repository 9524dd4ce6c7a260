// Command vqlite is the line-oriented prompt that drives the storage core:
// a single positional argument names the database file, then each line is
// either a meta-command (prefixed with '.') or an insert/select statement.
package main

import (
	"fmt"
	"os"

	"vqlite/table"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	t, err := table.Open(os.Args[1])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	err = run(os.Stdin, os.Stdout, t)
	if err == errExit {
		if err := t.Close(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	fmt.Println(err)
	os.Exit(1)
}
