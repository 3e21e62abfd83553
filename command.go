package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gx14ac/vqlite/table"
)

// MetaCommandResult is the outcome of a "." command.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

const helpText = `Meta-commands:
  .exit       close the database and exit
  .btree      print the B+Tree structure
  .constants  print derived layout constants
  .help       print this message
`

// doMetaCommand dispatches a line beginning with "." and writes any output
// to out. It returns MetaCommandUnrecognizedCommand for anything it does
// not recognize — the caller prints the "Unrecognized command" message.
// ".exit" is recognized but does nothing here: closing the table and ending
// the REPL loop is the caller's responsibility (see runREPL).
func doMetaCommand(line string, t *table.Table, out io.Writer) (MetaCommandResult, error) {
	switch strings.TrimSpace(line) {
	case ".exit":
		return MetaCommandSuccess, nil
	case ".help":
		fmt.Fprint(out, helpText)
		return MetaCommandSuccess, nil
	case ".btree":
		fmt.Fprint(out, "Tree:\n")
		var b strings.Builder
		if err := t.PrintTree(&b); err != nil {
			return MetaCommandSuccess, err
		}
		fmt.Fprint(out, b.String())
		return MetaCommandSuccess, nil
	case ".constants":
		fmt.Fprint(out, "Constants:\n")
		for _, c := range table.Constants() {
			fmt.Fprintf(out, "%s: %d\n", c.Name, c.Value)
		}
		return MetaCommandSuccess, nil
	default:
		return MetaCommandUnrecognizedCommand, nil
	}
}
