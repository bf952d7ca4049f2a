package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vpareek2/BitDB/table"
)

type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

var (
	errSyntax              = errors.New("Syntax error.")
	errNegativeID          = errors.New("ID must be positive.")
	errStringTooLong       = errors.New("String is too long.")
	errUnrecognizedKeyword = errors.New("unrecognized keyword") // reformatted with the input at the call site
)

// prepareStatement recognizes "insert <username> <id> <email>" and
// "select", validating the insert's arguments per spec §6. Field order is
// username, then id, then email.
func prepareStatement(input string, stmt *Statement) error {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input, stmt)
	}
	if input == "select" {
		stmt.Type = StatementSelect
		return nil
	}
	return errUnrecognizedKeyword
}

func prepareInsert(input string, stmt *Statement) error {
	stmt.Type = StatementInsert

	fields := strings.Fields(input)
	// fields[0] is "insert"; username, id, email follow in that order.
	if len(fields) != 4 {
		return errSyntax
	}
	username, idStr, email := fields[1], fields[2], fields[3]

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return errSyntax
	}
	if id < 0 {
		return errNegativeID
	}

	row := table.Row{ID: uint32(id), Username: username, Email: email}
	if err := table.ValidateRow(row); err != nil {
		return errStringTooLong
	}

	stmt.RowToInsert = row
	return nil
}
