package analysis

import "strings"

// ManagerName returns the name the speaker introduces themselves with, or ""
// when there is none.
//
// The pronoun pass ("я Иван", "меня Иван") keeps the last match in the
// utterance. Only when it finds nothing does the "зовут" pass run, and that
// one returns the first recognized neighbor, left side before right.
func (a *Analyzer) ManagerName(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}

	name := ""
	for i := 0; i+1 < len(tokens); i++ {
		if introPronouns.Has(strings.ToLower(tokens[i].Text)) && a.IsPerson(tokens[i+1].Text) {
			name = tokens[i+1].Text
		}
	}
	if name != "" {
		return name
	}

	for i, t := range tokens {
		if t.Text != triggerIsCalled {
			continue
		}
		if i > 0 && a.IsPerson(tokens[i-1].Text) {
			return tokens[i-1].Text
		}
		if i+1 < len(tokens) && a.IsPerson(tokens[i+1].Text) {
			return tokens[i+1].Text
		}
	}
	return ""
}

// CompanyName returns the words following the first "компания" lemma that
// hang off it as subject or modifiers, joined by spaces, or "" when there is
// no trigger or nothing follows it.
func (a *Analyzer) CompanyName(tokens []Token) string {
	i := 0
	for i < len(tokens) && tokens[i].Lemma != triggerCompany {
		i++
	}
	if i == len(tokens) {
		return ""
	}

	var name []string
	for _, t := range tokens[i+1:] {
		if !companyRels.Has(t.Rel) {
			break
		}
		name = append(name, t.Text)
	}
	return strings.Join(name, " ")
}
