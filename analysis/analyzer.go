package analysis

import "strings"

// Names is a read-only set of lower-case given names.
type Names interface {
	Contains(name string) bool
}

// Analyzer holds the lexicons and the name gazetteer. It is built once at
// startup and never mutated, so it is safe for concurrent use.
type Analyzer struct {
	greeting Lexicon
	farewell Lexicon
	names    Names
}

// NewAnalyzer returns an Analyzer over the default lexicons.
func NewAnalyzer(names Names) *Analyzer {
	return &Analyzer{
		greeting: GreetingLexicon(),
		farewell: FarewellLexicon(),
		names:    names,
	}
}

// Result is everything the analyzer finds in one utterance.
// Empty ManagerName / CompanyName mean not found.
type Result struct {
	Greeting    bool   `json:"greeting"`
	Farewell    bool   `json:"farewell"`
	ManagerName string `json:"manager_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// Analyze runs every classifier and extractor over tokens.
func (a *Analyzer) Analyze(tokens []Token) Result {
	return Result{
		Greeting:    a.IsGreeting(tokens),
		Farewell:    a.IsFarewell(tokens),
		ManagerName: a.ManagerName(tokens),
		CompanyName: a.CompanyName(tokens),
	}
}

// IsGreeting reports whether any lemma of tokens is a greeting lemma.
func (a *Analyzer) IsGreeting(tokens []Token) bool {
	return a.greeting.Intersects(lemmas(tokens))
}

// IsFarewell reports whether any lemma of tokens is a farewell lemma.
func (a *Analyzer) IsFarewell(tokens []Token) bool {
	return a.farewell.Intersects(lemmas(tokens))
}

// IsPerson reports whether word, lower-cased, is a known given name.
// Inflected forms are only recognized when the gazetteer lists them.
func (a *Analyzer) IsPerson(word string) bool {
	if a.names == nil {
		return false
	}
	return a.names.Contains(strings.ToLower(word))
}
