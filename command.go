package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vpareek2/BitDB/table"
)

type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

// doMetaCommand handles the three "." commands spec §6 names. ".exit"
// flushes and terminates the process directly, matching the original's
// in-line exit(EXIT_SUCCESS).
func doMetaCommand(input string, t *table.Table, w io.Writer) MetaCommandResult {
	switch strings.TrimSpace(input) {
	case ".exit":
		if err := t.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
		return MetaCommandSuccess // unreachable, satisfies the compiler
	case ".btree":
		if err := t.PrintTree(w); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return MetaCommandSuccess
	case ".constants":
		table.PrintConstants(w)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}
