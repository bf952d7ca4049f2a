// Command bitdb is a single-table embedded B+ tree store with a
// read-eval-print loop: INSERT and SELECT statements plus the .exit,
// .btree, and .constants meta-commands (spec §6).
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vpareek2/BitDB/table"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bitdb <database-file>",
		Short:         "A single-table embedded B+ tree store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(args[0], cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}
	return cmd
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}
}

func runREPL(filename string, out io.Writer, in io.Reader) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	t, err := table.Open(afero.NewOsFs(), filename, log)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "db > ")
		line, err := readInput(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		if line[0] == '.' {
			if doMetaCommand(line, t, out) == MetaCommandUnrecognizedCommand {
				fmt.Fprintf(out, "Unrecognized command '%s'.\n", line)
			}
			continue
		}

		var stmt Statement
		if err := prepareStatement(line, &stmt); err != nil {
			if errors.Is(err, errUnrecognizedKeyword) {
				fmt.Fprintf(out, "Unrecognized keyword at start of '%s'.\n", line)
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		executeStatement(&stmt, t, out)
	}
}

func executeStatement(stmt *Statement, t *table.Table, out io.Writer) {
	switch stmt.Type {
	case StatementInsert:
		if err := t.Insert(stmt.RowToInsert); err != nil {
			fmt.Fprintln(out, err)
		}
	case StatementSelect:
		if err := t.Select(out); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
