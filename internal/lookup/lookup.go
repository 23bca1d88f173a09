// Package lookup loads the hashed device-model lookup table and computes
// the content address that joins raw phone numbers against it.
package lookup

import (
	"bufio"
	"crypto/md5" //nolint:gosec // digest format is fixed by the existing lookup data
	"encoding/hex"
	"io"
	"os"
	"strings"

	"orderrate/pkg/errors"
)

// Key returns the content address of an identifier: the lowercase hex MD5
// digest of its verbatim UTF-8 bytes. This is the join key between raw
// phone numbers and the lookup table; any normalization here would
// silently produce zero matches instead of an error.
func Key(identifier string) string {
	sum := md5.Sum([]byte(identifier)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Table maps content addresses to device-model names. It is built once
// per run and immutable afterwards.
type Table struct {
	models      map[string]string
	overwritten int
}

// Get returns the model for a key, or the empty string when no entry
// matches.
func (t *Table) Get(key string) string {
	return t.models[key]
}

// Len returns the number of distinct keys in the table.
func (t *Table) Len() int {
	return len(t.models)
}

// Overwritten returns how many source lines replaced an earlier entry for
// the same key (last write wins).
func (t *Table) Overwritten() int {
	return t.overwritten
}

// Load reads a tab-separated lookup file into a Table. The first line is
// a header and is skipped. Each data line must have at least two fields,
// [key, model, ...]; extra fields are ignored and short lines are skipped.
// A missing or unreadable file is fatal for the run.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return t, nil
}

// Parse reads lookup lines from r. Exposed separately so callers can load
// tables from sources other than files.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{models: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if first {
			// Header line.
			first = false
			continue
		}
		fields := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(fields) < 2 {
			continue
		}
		if _, ok := t.models[fields[0]]; ok {
			t.overwritten++
		}
		t.models[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return t, nil
}
