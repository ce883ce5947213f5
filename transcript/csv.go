package transcript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var csvColumns = []string{"dlg_id", "line_n", "role", "text"}

// LoadCSV reads a transcript CSV with a dlg_id,line_n,role,text header.
// Extra columns are ignored.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over a reader.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("transcript: header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	cols := make([]int, len(csvColumns))
	for i, name := range csvColumns {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadRow, name)
		}
		cols[i] = c
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("transcript: line %d: %w", line, err)
		}
		cell := func(i int) string {
			if cols[i] < len(rec) {
				return rec[cols[i]]
			}
			return ""
		}
		dlg, err := strconv.Atoi(strings.TrimSpace(cell(0)))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: dlg_id %q", ErrBadRow, line, cell(0))
		}
		n, err := strconv.Atoi(strings.TrimSpace(cell(1)))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: line_n %q", ErrBadRow, line, cell(1))
		}
		rows = append(rows, Row{DialogueID: dlg, Line: n, Role: cell(2), Text: cell(3)})
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
