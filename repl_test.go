package main

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gx14ac/vqlite/table"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "repl_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func runScript(t *testing.T, path, script string) string {
	t.Helper()
	tb, err := table.Open(path)
	require.NoError(t, err)

	var out bytes.Buffer
	err = runREPL(strings.NewReader(script), &out, tb)
	require.NoError(t, err)
	return out.String()
}

func TestReplEmptySelect(t *testing.T) {
	out := runScript(t, tempDBPath(t), "select\n.exit\n")
	require.Equal(t, "db > Executed.\ndb > ", out)
}

func TestReplInsertThenSelect(t *testing.T) {
	out := runScript(t, tempDBPath(t), "insert 1 user1 person1@example.com\nselect\n.exit\n")
	require.Contains(t, out, "(1, user1, person1@example.com)")
}

func TestReplDuplicateKey(t *testing.T) {
	out := runScript(t, tempDBPath(t), "insert 1 a a@a\ninsert 1 b b@b\nselect\n.exit\n")
	require.Contains(t, out, "Error: Duplicate key.")
	require.Equal(t, []string{"(1, a, a@a)"}, rowLines(out))
}

func TestReplOversizeString(t *testing.T) {
	longUsername := strings.Repeat("a", table.UsernameMaxLength+1)
	out := runScript(t, tempDBPath(t), "insert 1 "+longUsername+" a@a\nselect\n.exit\n")
	require.Contains(t, out, "String is too long.")

	for _, l := range strings.Split(out, "\n") {
		require.False(t, strings.HasPrefix(strings.TrimPrefix(l, prompt), "("), "no row should have been stored: %q", l)
	}
}

func TestReplNegativeID(t *testing.T) {
	out := runScript(t, tempDBPath(t), "insert -1 u e\n.exit\n")
	require.Contains(t, out, "ID must be positive.")
}

func TestReplPersistenceAcrossReopen(t *testing.T) {
	path := tempDBPath(t)

	first := runScript(t, path, "insert 1 a a@a\ninsert 2 b b@b\ninsert 3 c c@c\n.exit\n")
	require.Contains(t, first, "Executed.")

	second := runScript(t, path, "select\n.exit\n")
	require.Equal(t, []string{"(1, a, a@a)", "(2, b, b@b)", "(3, c, c@c)"}, rowLines(second))
}

func TestReplOrderedTraversalAfterSplits(t *testing.T) {
	perm := []int{14, 11, 9, 12, 7, 13, 3, 8, 5, 1, 4, 6, 10, 2}
	var script strings.Builder
	for _, id := range perm {
		s := strconv.Itoa(id)
		script.WriteString("insert " + s + " user" + s + " person" + s + "@example.com\n")
	}
	script.WriteString("select\n.btree\n.exit\n")

	out := runScript(t, tempDBPath(t), script.String())

	rows := rowLines(out)
	require.Len(t, rows, 14)
	for i, r := range rows {
		wantID := strconv.Itoa(i + 1)
		require.Contains(t, r, "("+wantID+", user"+wantID+", person"+wantID+"@example.com)")
	}

	require.Contains(t, out, "- internal (size")
}

func rowLines(out string) []string {
	var rows []string
	for _, l := range strings.Split(out, "\n") {
		// The first row of a select follows the prompt on the same line.
		l = strings.TrimPrefix(l, prompt)
		if strings.HasPrefix(l, "(") {
			rows = append(rows, l)
		}
	}
	return rows
}
