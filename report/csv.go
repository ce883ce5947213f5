package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVHeader is the column layout of the CSV report.
var CSVHeader = []string{
	"Dlg_no",
	"Greeting",
	"Introduction",
	"Manager's name",
	"Company's name",
	"Say goodbye",
	"The requirement",
}

// WriteCSV writes one row per record. Absent fields are empty cells and the
// compliance flag is True or False.
func WriteCSV(w io.Writer, records []ComplianceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.DialogueID),
			r.Greeting.Value,
			r.Introduction.Value,
			r.ManagerName.Value,
			r.CompanyName.Value,
			r.Farewell.Value,
			pyBool(r.Compliant),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
