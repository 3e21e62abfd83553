// Command vqlite is a minimal single-table, single-user key-value database
// exposed through a line-oriented REPL, backed by a page-based B+Tree file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gx14ac/vqlite/table"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: vqlite <filename>")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t, err := table.Open(flag.Arg(0))
	if err != nil {
		fatalExit(err)
	}

	if err := runREPL(os.Stdin, os.Stdout, t); err != nil {
		fatalExit(err)
	}
}

// fatalExit prints a short diagnostic and terminates — the storage engine
// has hit an invariant violation it cannot recover from, and no attempt at
// repair is made.
func fatalExit(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

// runREPL drives the prompt/read/dispatch loop until ".exit" or EOF. It
// never calls os.Exit itself, so it can be driven by tests against an
// in-memory reader/writer pair.
func runREPL(in io.Reader, out io.Writer, t *table.Table) error {
	reader := bufio.NewReader(in)

	for {
		printPrompt(out)

		line, err := readInput(reader)
		atEOF := err == io.EOF
		if err != nil && !atEOF {
			return err
		}
		if err != nil && atEOF && line == "" {
			return nil
		}

		if strings.HasPrefix(line, ".") {
			if strings.TrimSpace(line) == ".exit" {
				return t.Close()
			}

			result, err := doMetaCommand(line, t, out)
			if err != nil {
				return err
			}
			if result == MetaCommandUnrecognizedCommand {
				fmt.Fprintf(out, "Unrecognized command '%s'\n", line)
			}
			continue
		}

		stmt, prepareResult := prepareStatement(line)
		switch prepareResult {
		case PrepareSuccess:
		case PrepareStringTooLong:
			fmt.Fprintln(out, "String is too long.")
			continue
		case PrepareNegativeID:
			fmt.Fprintln(out, "ID must be positive.")
			continue
		case PrepareSyntaxError:
			fmt.Fprintln(out, "Syntax error, could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Fprintf(out, "Unrecognized keyword at start of '%s'. \n", line)
			continue
		}

		execResult, err := executeStatement(stmt, t, out)
		if err != nil {
			return err
		}
		switch execResult {
		case ExecuteSuccess:
			fmt.Fprintln(out, "Executed.")
		case ExecuteDuplicateKey:
			fmt.Fprintln(out, "Error: Duplicate key.")
		case ExecuteTableFull:
			fmt.Fprintln(out, "Error: Table full.")
		}
	}
}
