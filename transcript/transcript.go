// Package transcript reads call transcripts and groups them into dialogues.
//
// A transcript is a table of rows keyed by (dialogue id, line number) with a
// speaker role and the line's text. Rows sharing a key are merged by
// concatenating their text in input order. Dialogue ids must form a dense
// range starting at 0; the dialogue count is the largest id plus one.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoRows is returned for a transcript without data rows.
	ErrNoRows = errors.New("transcript: no rows")
	// ErrBadRow is returned for a row that cannot be parsed.
	ErrBadRow = errors.New("transcript: bad row")
)

type Role string

const (
	RoleManager Role = "manager"
	RoleClient  Role = "client"
	RoleUnknown Role = ""
)

// ParseRole maps a role cell to a Role, case-insensitively.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleManager:
		return RoleManager
	case RoleClient:
		return RoleClient
	}
	return RoleUnknown
}

// Row is one line of the transcript store as read.
type Row struct {
	DialogueID int
	Line       int
	Role       string
	Text       string
}

// Turn is one speaker turn after duplicate keys are merged.
type Turn struct {
	Line int
	Role Role
	Text string
}

type Dialogue struct {
	ID    int
	Turns []Turn
}

// Manager returns the manager's turns in line order.
func (d Dialogue) Manager() []Turn {
	var out []Turn
	for _, t := range d.Turns {
		if t.Role == RoleManager {
			out = append(out, t)
		}
	}
	return out
}

// Conflict records a merged key whose rows disagreed on the speaker role.
// The merged turn has RoleUnknown and belongs to no speaker.
type Conflict struct {
	DialogueID int
	Line       int
	Roles      []string
}

// Group merges rows sharing a (dialogue, line) key and returns dialogues
// 0..max id. Ids in that range without rows come back with no turns.
func Group(rows []Row) ([]Dialogue, []Conflict, error) {
	if len(rows) == 0 {
		return nil, nil, ErrNoRows
	}
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DialogueID != sorted[j].DialogueID {
			return sorted[i].DialogueID < sorted[j].DialogueID
		}
		return sorted[i].Line < sorted[j].Line
	})

	maxID := sorted[len(sorted)-1].DialogueID
	if sorted[0].DialogueID < 0 {
		return nil, nil, fmt.Errorf("%w: negative dialogue id %d", ErrBadRow, sorted[0].DialogueID)
	}
	dialogues := make([]Dialogue, maxID+1)
	for i := range dialogues {
		dialogues[i].ID = i
	}

	var conflicts []Conflict
	for i := 0; i < len(sorted); {
		j := i
		var text strings.Builder
		roles := []string{}
		for j < len(sorted) && sorted[j].DialogueID == sorted[i].DialogueID && sorted[j].Line == sorted[i].Line {
			text.WriteString(sorted[j].Text)
			roles = append(roles, sorted[j].Role)
			j++
		}

		role := ParseRole(roles[0])
		for _, r := range roles[1:] {
			if ParseRole(r) != role {
				role = RoleUnknown
				conflicts = append(conflicts, Conflict{DialogueID: sorted[i].DialogueID, Line: sorted[i].Line, Roles: roles})
				break
			}
		}

		d := &dialogues[sorted[i].DialogueID]
		d.Turns = append(d.Turns, Turn{Line: sorted[i].Line, Role: role, Text: text.String()})
		i = j
	}
	return dialogues, conflicts, nil
}

// Load reads rows from path: SQLite for .db/.sqlite/.sqlite3, CSV otherwise.
func Load(ctx context.Context, path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return LoadCSV(path)
	}
}
