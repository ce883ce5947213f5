package orchestrator

import (
	"fmt"
	"sort"

	"github.com/salesqa/callcheck/analysis"
	"github.com/salesqa/callcheck/report"
)

// span is a half-open range [lo, hi) of manager turn indices.
type span struct {
	lo, hi int
	short  bool // fewer turns than the window size
}

// leading covers the first size turns.
func leading(n, size int) span {
	return span{lo: 0, hi: min(size, n), short: n < size}
}

// trailing covers the last size turns.
func trailing(n, size int) span {
	return span{lo: max(n-size, 0), hi: n, short: n < size}
}

// needed returns the turn indices either window touches, ascending.
func (p *Pipeline) needed(n int) []int {
	lead, trail := leading(n, p.cfg.Windows.Leading), trailing(n, p.cfg.Windows.Trailing)
	var out []int
	for i := 0; i < n; i++ {
		if (i >= lead.lo && i < lead.hi) || (i >= trail.lo && i < trail.hi) {
			out = append(out, i)
		}
	}
	return out
}

// aggregate folds one dialogue's annotated manager turns into its record.
// utts is indexed by manager turn; turns outside both windows may be nil.
//
// Every field follows last-wins: walking a window in turn order, each hit
// overwrites the previous one.
//   - greeting: last leading turn classified as a greeting
//   - introduction, manager name: last leading turn with a non-empty name
//   - company name: last leading turn with a non-empty company
//   - farewell: last trailing turn classified as a farewell
func (p *Pipeline) aggregate(id int, utts []*Utterance) report.ComplianceRecord {
	n := len(utts)
	rec := report.ComplianceRecord{DialogueID: id, ManagerTurns: n}

	results := make(map[int]analysis.Result, n)
	analyze := func(i int) analysis.Result {
		if r, ok := results[i]; ok {
			return r
		}
		var tokens []analysis.Token
		if utts[i] != nil {
			tokens = utts[i].Tokens
		}
		r := p.an.Analyze(tokens)
		results[i] = r
		return r
	}

	lead := leading(n, p.cfg.Windows.Leading)
	for i := lead.lo; i < lead.hi; i++ {
		r := analyze(i)
		if r.Greeting {
			rec.Greeting = report.Some(utts[i].Text)
		}
		if r.ManagerName != "" {
			rec.ManagerName = report.Some(r.ManagerName)
			rec.Introduction = report.Some(utts[i].Text)
		}
		if r.CompanyName != "" {
			rec.CompanyName = report.Some(r.CompanyName)
		}
	}

	trail := trailing(n, p.cfg.Windows.Trailing)
	for i := trail.lo; i < trail.hi; i++ {
		if analyze(i).Farewell {
			rec.Farewell = report.Some(utts[i].Text)
		}
	}

	rec.Compliant = rec.Greeting.Found && rec.Farewell.Found

	if lead.short {
		rec.Partial = true
		rec.Notes = append(rec.Notes, fmt.Sprintf("leading window short: %d of %d turns", n, p.cfg.Windows.Leading))
	}
	if trail.short {
		rec.Partial = true
		rec.Notes = append(rec.Notes, fmt.Sprintf("trailing window short: %d of %d turns", n, p.cfg.Windows.Trailing))
	}
	return rec
}

func sortDiagnostics(d []report.Diagnostic) {
	sort.Slice(d, func(i, j int) bool {
		if d[i].DialogueID != d[j].DialogueID {
			return d[i].DialogueID < d[j].DialogueID
		}
		return d[i].Turn < d[j].Turn
	})
}
