package analysis

// Lexicon is a fixed set of lemmas.
type Lexicon map[string]struct{}

// NewLexicon builds a Lexicon from its entries.
func NewLexicon(entries ...string) Lexicon {
	l := make(Lexicon, len(entries))
	for _, e := range entries {
		l[e] = struct{}{}
	}
	return l
}

// Has reports whether lemma is an entry.
func (l Lexicon) Has(lemma string) bool {
	_, ok := l[lemma]
	return ok
}

// Intersects reports whether any of the given lemmas is an entry.
func (l Lexicon) Intersects(set map[string]struct{}) bool {
	for lemma := range set {
		if l.Has(lemma) {
			return true
		}
	}
	return false
}

// GreetingLexicon returns the lemmas that mark a greeting.
func GreetingLexicon() Lexicon {
	return NewLexicon(
		"добрый",
		"здравствовать",
		"привет",
		"приветствовать",
		"почтение",
		"рад",
		"рада",
	)
}

// FarewellLexicon returns the lemmas that mark a farewell.
//
// "добрыйзавтра" is kept as one entry; no tokenizer produces it as a lemma.
// Whether it was meant as "добрый" and "завтра" is unresolved.
func FarewellLexicon() Lexicon {
	return NewLexicon(
		"встреча",
		"свидание",
		"хороший",
		"спасибо",
		"благодарить",
		"добрыйзавтра",
		"прощаться",
	)
}

// Trigger words used by the extractors.
var (
	// introPronouns precede a name: "я", "это", "имя", "меня".
	introPronouns = NewLexicon("я", "это", "имя", "меня")
)

const (
	triggerIsCalled = "зовут"
	triggerCompany  = "компания"
)

var companyRels = NewLexicon(RelNominalSubject, RelAdjModifier, RelNominalMod)
