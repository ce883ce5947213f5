// Package report holds the per-dialogue compliance record and writes it out
// as CSV, a JSON bundle or a SQLite table.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Field is an optional value. Found separates "not found" from a found
// empty string.
type Field struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

func Some(v string) Field { return Field{Value: v, Found: true} }

// None is the absent value.
var None = Field{}

// ComplianceRecord is the result for one dialogue. Compliant is true iff
// both Greeting and Farewell were found. Partial is set when a lookup window
// was cut short because the manager spoke fewer turns than it needs; Notes
// say which.
type ComplianceRecord struct {
	DialogueID   int      `json:"dialogue_id"`
	Greeting     Field    `json:"greeting"`
	Introduction Field    `json:"introduction"`
	ManagerName  Field    `json:"manager_name"`
	CompanyName  Field    `json:"company_name"`
	Farewell     Field    `json:"farewell"`
	Compliant    bool     `json:"compliant"`
	Partial      bool     `json:"partial"`
	ManagerTurns int      `json:"manager_turns"`
	Notes        []string `json:"notes,omitempty"`
}

// Diagnostic describes one utterance whose annotation failed. The utterance
// was evaluated as if it had no tokens.
type Diagnostic struct {
	DialogueID int    `json:"dialogue_id"`
	Turn       int    `json:"turn"`
	Line       int    `json:"line"`
	Err        string `json:"error"`
}

// Conflict is a transcript key whose merged rows disagreed on the speaker.
type Conflict struct {
	DialogueID int      `json:"dialogue_id"`
	Line       int      `json:"line"`
	Roles      []string `json:"roles"`
}

// Bundle is everything one run produced.
type Bundle struct {
	RunID       string             `json:"run_id"`
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
	Records     []ComplianceRecord `json:"records"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
	Conflicts   []Conflict         `json:"conflicts,omitempty"`
}

// NewBundle stamps a fresh run id and time.
func NewBundle(source string, records []ComplianceRecord, diags []Diagnostic, conflicts []Conflict) *Bundle {
	return &Bundle{
		RunID:       uuid.NewString(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Records:     records,
		Diagnostics: diags,
		Conflicts:   conflicts,
	}
}

// Summary counts compliant, partial and total records.
func (b *Bundle) Summary() (compliant, partial, total int) {
	for _, r := range b.Records {
		if r.Compliant {
			compliant++
		}
		if r.Partial {
			partial++
		}
	}
	return compliant, partial, len(b.Records)
}
