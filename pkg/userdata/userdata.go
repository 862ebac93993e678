// Package userdata loads the CSV user-data table described in spec.md §3
// and §6: the first row names the initial variable namespace, and every
// following row is one test identity. CSV parsing is delegated to the
// standard library per spec.md §1's "configuration file loading... is
// delegated" non-goal — there's no ecosystem CSV library in the example
// pack to reach for instead (see DESIGN.md).
package userdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Row is one mapping from column name to string value — a single test
// identity, seeding the variable namespace for one (row, environment)
// traversal. It is a plain map: the CSV column order is not kept.
type Row map[string]string

// Load reads a CSV file and returns one Row per data record.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("userdata: failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("userdata: %s has no header row", path)
		}
		return nil, fmt.Errorf("userdata: failed to read header of %s: %w", path, err)
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("userdata: failed to read %s: %w", path, err)
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
