package table

import (
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap/zaptest"
)

// newTestTable opens a fresh in-memory table. fs is returned too so a test
// can reopen the same file to exercise persistence (spec S1).
func newTestTable(t *testing.T) (*Table, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	log := zaptest.NewLogger(t).Sugar()
	tbl, err := Open(fs, "test.db", log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return tbl, fs
}

func reopenTestTable(t *testing.T, fs afero.Fs) *Table {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	tbl, err := Open(fs, "test.db", log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return tbl
}

func allRows(t *testing.T, tbl *Table) []Row {
	t.Helper()
	cursor, err := tbl.start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	var rows []Row
	for !cursor.EndOfTable {
		raw, err := cursor.Value()
		if err != nil {
			t.Fatalf("Value: %v", err)
		}
		row, err := DeserializeRow(raw)
		if err != nil {
			t.Fatalf("DeserializeRow: %v", err)
		}
		rows = append(rows, row)
		if err := cursor.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	return rows
}
