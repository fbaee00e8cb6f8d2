package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// LoadError marks a raw source as missing, unreadable or failing the
// required-column contract. It is fatal to the pass that triggered the load.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErrorf(source string, err error, msg string) error {
	return &LoadError{Source: source, Err: errors.Wrap(err, msg)}
}

// table is a raw CSV source with a header index. Column order in the file is
// not part of the contract, column names are.
type table struct {
	source  string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required []string) (*table, error) {
	source := sourceName(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, loadErrorf(source, err, "open source file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, loadErrorf(source, err, "parse csv")
	}
	if len(records) == 0 {
		return nil, &LoadError{Source: source, Err: errors.New("empty file, header row missing")}
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, &LoadError{Source: source,
				Err: errors.Errorf("required column %q missing", name)}
		}
	}

	return &table{source: source, columns: columns, rows: records[1:]}, nil
}

func sourceName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func (t *table) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

func (t *table) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// parseDate parses the date formats the raw exports are known to carry.
// Unlike numeric coercion, an unparseable date is a contract violation.
func (t *table) parseDate(row []string, col string) (time.Time, error) {
	raw := t.get(row, col)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &LoadError{Source: t.source,
		Err: errors.Errorf("column %q: unparseable date %q", col, raw)}
}
