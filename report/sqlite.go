package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS compliance (
	run_id        TEXT    NOT NULL,
	dialogue_id   INTEGER NOT NULL,
	greeting      TEXT,
	introduction  TEXT,
	manager_name  TEXT,
	company_name  TEXT,
	farewell      TEXT,
	compliant     INTEGER NOT NULL,
	partial       INTEGER NOT NULL,
	manager_turns INTEGER NOT NULL,
	notes         TEXT,
	PRIMARY KEY (run_id, dialogue_id)
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id      TEXT    NOT NULL,
	dialogue_id INTEGER NOT NULL,
	turn        INTEGER NOT NULL,
	line        INTEGER NOT NULL,
	error       TEXT    NOT NULL
);`

// WriteSQLite appends the bundle to the database at path, creating the
// tables if needed. Absent fields are stored as NULL.
func WriteSQLite(ctx context.Context, path string, b *Bundle) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range b.Records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO compliance (run_id, dialogue_id, greeting, introduction, manager_name,
				company_name, farewell, compliant, partial, manager_turns, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.RunID, r.DialogueID,
			nullable(r.Greeting), nullable(r.Introduction), nullable(r.ManagerName),
			nullable(r.CompanyName), nullable(r.Farewell),
			r.Compliant, r.Partial, r.ManagerTurns, strings.Join(r.Notes, "; "),
		)
		if err != nil {
			return fmt.Errorf("inserting dialogue %d: %w", r.DialogueID, err)
		}
	}
	for _, d := range b.Diagnostics {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, dialogue_id, turn, line, error) VALUES (?, ?, ?, ?, ?)`,
			b.RunID, d.DialogueID, d.Turn, d.Line, d.Err,
		)
		if err != nil {
			return fmt.Errorf("inserting diagnostic: %w", err)
		}
	}
	return tx.Commit()
}

func nullable(f Field) sql.NullString {
	return sql.NullString{String: f.Value, Valid: f.Found}
}
