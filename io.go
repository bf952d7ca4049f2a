package main

import (
	"bufio"
	"strings"
)

// readInput reads one line and trims its trailing newline and surrounding
// whitespace. The prompt itself is written by the caller, against an
// injectable io.Writer, so it can be captured in tests.
func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
