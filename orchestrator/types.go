package orchestrator

import (
	"context"

	"github.com/salesqa/callcheck/analysis"
	"github.com/salesqa/callcheck/report"
)

// Annotator turns raw text into an annotated token sequence.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]analysis.Token, error)
}

// Utterance is one annotated manager turn.
type Utterance struct {
	Turn   int // index among the dialogue's manager turns
	Line   int
	Text   string
	Tokens []analysis.Token
}

// Result is what Evaluate returns for a batch of dialogues.
type Result struct {
	Records     []report.ComplianceRecord
	Diagnostics []report.Diagnostic
}
