package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gx14ac/vqlite/table"
)

// StatementType distinguishes the two supported statements.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed form of one input line.
type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

// PrepareResult is the outcome of parsing and validating a statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareNegativeID
	PrepareStringTooLong
	PrepareUnrecognizedStatement
)

// prepareStatement parses line into a Statement. It rejects oversize
// fields and negative ids but otherwise does not touch the storage engine.
func prepareStatement(line string) (Statement, PrepareResult) {
	if strings.HasPrefix(line, "insert") {
		return prepareInsert(line)
	}
	if line == "select" {
		return Statement{Type: StatementSelect}, PrepareSuccess
	}
	return Statement{}, PrepareUnrecognizedStatement
}

func prepareInsert(line string) (Statement, PrepareResult) {
	fields := strings.Fields(line)
	// fields[0] is "insert"; need id, username, email beyond it.
	if len(fields) < 4 {
		return Statement{}, PrepareSyntaxError
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return Statement{}, PrepareSyntaxError
	}
	if id < 0 {
		return Statement{}, PrepareNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > table.UsernameMaxLength || len(email) > table.EmailMaxLength {
		return Statement{}, PrepareStringTooLong
	}

	return Statement{
		Type: StatementInsert,
		RowToInsert: table.Row{
			ID:       uint32(id),
			Username: username,
			Email:    email,
		},
	}, PrepareSuccess
}

// ExecuteResult is the recoverable outcome of running a prepared statement.
type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteDuplicateKey
	ExecuteTableFull
)

// executeStatement runs stmt against t, writing select output to out.
func executeStatement(stmt Statement, t *table.Table, out io.Writer) (ExecuteResult, error) {
	switch stmt.Type {
	case StatementInsert:
		return executeInsert(stmt, t)
	case StatementSelect:
		if err := executeSelect(t, out); err != nil {
			return ExecuteSuccess, err
		}
		return ExecuteSuccess, nil
	default:
		return ExecuteSuccess, nil
	}
}

func executeInsert(stmt Statement, t *table.Table) (ExecuteResult, error) {
	result, err := t.Insert(stmt.RowToInsert)
	if err != nil {
		return ExecuteSuccess, err
	}
	switch result {
	case table.InsertDuplicateKey:
		return ExecuteDuplicateKey, nil
	case table.InsertTableFull:
		return ExecuteTableFull, nil
	default:
		return ExecuteSuccess, nil
	}
}

func executeSelect(t *table.Table, out io.Writer) error {
	c, err := t.Start()
	if err != nil {
		return err
	}

	for !c.EndOfTable {
		buf, err := c.Value()
		if err != nil {
			return err
		}
		row, err := table.DeserializeRow(buf)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, row.String())

		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}
