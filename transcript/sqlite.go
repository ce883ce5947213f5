package transcript

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// LoadSQLite reads rows from the transcripts(dlg_id, line_n, role, text)
// table of a SQLite database. Rows keep insertion order within a key.
func LoadSQLite(ctx context.Context, path string) ([]Row, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("transcript: opening database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx,
		`SELECT dlg_id, line_n, role, COALESCE(text, '') FROM transcripts ORDER BY dlg_id, line_n, rowid`)
	if err != nil {
		return nil, fmt.Errorf("transcript: querying transcripts: %w", err)
	}
	defer rs.Close()

	var rows []Row
	for rs.Next() {
		var r Row
		if err := rs.Scan(&r.DialogueID, &r.Line, &r.Role, &r.Text); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRow, err)
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("transcript: reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
