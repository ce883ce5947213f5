package orchestrator

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/salesqa/callcheck/analysis"
	cfg "github.com/salesqa/callcheck/config"
	"github.com/salesqa/callcheck/report"
	"github.com/salesqa/callcheck/transcript"
)

type Pipeline struct {
	cfg *cfg.Root
	nlp Annotator
	an  *analysis.Analyzer
	log logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, nlp Annotator, an *analysis.Analyzer, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, nlp: nlp, an: an, log: log}
}

// Run evaluates the transcript at path and persists the report under
// cfg.Paths.Outputs. It returns the bundle and the session directory.
func (p *Pipeline) Run(ctx context.Context, path string) (*report.Bundle, string, error) {
	rows, err := transcript.Load(ctx, path)
	if err != nil {
		return nil, "", err
	}
	dialogues, conflicts, err := transcript.Group(rows)
	if err != nil {
		return nil, "", err
	}
	p.log.WithFields(logrus.Fields{"rows": len(rows), "dialogues": len(dialogues)}).Info("transcript loaded")

	var merged []report.Conflict
	for _, c := range conflicts {
		p.log.WithFields(logrus.Fields{"dialogue": c.DialogueID, "line": c.Line, "roles": c.Roles}).
			Warn("merged rows disagree on speaker, line dropped")
		merged = append(merged, report.Conflict{DialogueID: c.DialogueID, Line: c.Line, Roles: c.Roles})
	}

	res, err := p.Evaluate(ctx, dialogues)
	if err != nil {
		return nil, "", err
	}

	bundle := report.NewBundle(path, res.Records, res.Diagnostics, merged)
	dir, err := persist(ctx, p.cfg.Paths.Outputs, p.cfg.Report.Formats, bundle)
	if err != nil {
		return nil, "", err
	}

	compliant, partial, total := bundle.Summary()
	p.log.WithFields(logrus.Fields{
		"run_id":      bundle.RunID,
		"dialogues":   total,
		"compliant":   compliant,
		"partial":     partial,
		"diagnostics": len(bundle.Diagnostics),
		"out":         dir,
	}).Info("report written")
	return bundle, dir, nil
}

// Evaluate annotates the manager turns each dialogue's windows need and
// folds them into one record per dialogue, in dialogue order.
//
// Annotation runs on a pool of cfg.Workers.Annotate goroutines with a
// per-call timeout. A failed call does not stop its siblings: the turn is
// evaluated with no tokens and a Diagnostic is recorded. Only cancellation of
// ctx aborts the batch.
func (p *Pipeline) Evaluate(ctx context.Context, dialogues []transcript.Dialogue) (*Result, error) {
	utts := make([][]*Utterance, len(dialogues))

	var (
		mu    sync.Mutex
		diags []report.Diagnostic
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers.Annotate)

	for di, d := range dialogues {
		turns := d.Manager()
		utts[di] = make([]*Utterance, len(turns))
		for _, ti := range p.needed(len(turns)) {
			u := &Utterance{Turn: ti, Line: turns[ti].Line, Text: turns[ti].Text}
			utts[di][ti] = u
			id := d.ID
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				callCtx, cancel := context.WithTimeout(gctx, cfg.DurSeconds(p.cfg.Services.NLP.TimeoutSec))
				defer cancel()

				tokens, err := p.nlp.Annotate(callCtx, u.Text)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					p.log.WithFields(logrus.Fields{"dialogue": id, "turn": u.Turn, "line": u.Line}).
						WithError(err).Warn("annotation failed, turn treated as empty")
					mu.Lock()
					diags = append(diags, report.Diagnostic{DialogueID: id, Turn: u.Turn, Line: u.Line, Err: err.Error()})
					mu.Unlock()
					return nil
				}
				u.Tokens = tokens
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]report.ComplianceRecord, len(dialogues))
	var ag errgroup.Group
	ag.SetLimit(p.cfg.Workers.Dialogues)
	for di, d := range dialogues {
		di, d := di, d
		ag.Go(func() error {
			rec := p.aggregate(d.ID, utts[di])
			if rec.Partial {
				p.log.WithFields(logrus.Fields{"dialogue": d.ID, "notes": rec.Notes}).Warn("dialogue partially evaluated")
			}
			records[di] = rec
			return nil
		})
	}
	_ = ag.Wait()

	sortDiagnostics(diags)
	return &Result{Records: records, Diagnostics: diags}, nil
}
