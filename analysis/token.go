// Package analysis turns annotated utterances into compliance signals:
// greeting and farewell classification, speaker-name and company-name
// extraction. Every function here is a pure read over a token sequence and
// the immutable Analyzer context.
package analysis

// Dependency relation labels the company extractor follows.
const (
	RelNominalSubject = "nsubj"
	RelAdjModifier    = "amod"
	RelNominalMod     = "nmod"
)

// Token is one annotated word of an utterance.
type Token struct {
	Index  int    `json:"id"`
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	POS    string `json:"pos,omitempty"`
	Rel    string `json:"rel"`
	HeadID int    `json:"head_id"`
}

// Span is a named-entity span over the raw utterance text.
type Span struct {
	Start int    `json:"start"`
	Stop  int    `json:"stop"`
	Type  string `json:"type"`
}

// lemmas collects the distinct lemmas of a token sequence.
func lemmas(tokens []Token) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		out[t.Lemma] = struct{}{}
	}
	return out
}
