package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func printPrompt(w io.Writer) {
	fmt.Fprint(w, "db > ")
}

// readInput reads one line, stripping the trailing newline.
func readInput(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
