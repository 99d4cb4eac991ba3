package stubservice

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Flags are the binary symptoms the form exposes as checkboxes.
type Flags struct {
	Tosse         bool
	Fadiga        bool
	SedeExcessiva bool
	Vomitos       bool
	FaltaAr       bool
}

// Or merges two flag sets.
func (f Flags) Or(other Flags) Flags {
	return Flags{
		Tosse:         f.Tosse || other.Tosse,
		Fadiga:        f.Fadiga || other.Fadiga,
		SedeExcessiva: f.SedeExcessiva || other.SedeExcessiva,
		Vomitos:       f.Vomitos || other.Vomitos,
		FaltaAr:       f.FaltaAr || other.FaltaAr,
	}
}

var keywords = []struct {
	set      func(*Flags)
	patterns []*regexp.Regexp
}{
	{
		set: func(f *Flags) { f.Tosse = true },
		patterns: compile(`\btosse(m|s)?\b`, `\btossindo\b`, `\bcof\b`),
	},
	{
		set: func(f *Flags) { f.Fadiga = true },
		patterns: compile(`\bfadiga\b`, `\bcansac[oa]\b`, `\bexaust[ao]\b`, `\bprostrac?ao\b`),
	},
	{
		set: func(f *Flags) { f.SedeExcessiva = true },
		patterns: compile(`\bsede\b`, `\bpolidips?ia\b`, `\bmuita sede\b`),
	},
	{
		set: func(f *Flags) { f.Vomitos = true },
		patterns: compile(`\bvomit(o|os|ou|ando)?\b`, `\benjoo\b`, `\bnauseas?\b`),
	},
	{
		set: func(f *Flags) { f.FaltaAr = true },
		patterns: compile(`\bfalta de ar\b`, `\bdificuldade para? respirar\b`, `\bdispneia?\b`, `\bchiado\b`, `\bsufoc[oa]\b`),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Fold lowercases text and strips accents and any other non-ASCII rune, so
// "Vômitos" and "vomitos" match the same keyword.
func Fold(text string) string {
	decomposed := norm.NFD.String(text)
	folded := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) || r > unicode.MaxASCII {
			return -1
		}
		return unicode.ToLower(r)
	}, decomposed)
	return folded
}

// ParseSymptoms reads free text for symptom keywords.
func ParseSymptoms(text string) Flags {
	var flags Flags
	folded := Fold(text)
	if strings.TrimSpace(folded) == "" {
		return flags
	}
	for _, kw := range keywords {
		for _, p := range kw.patterns {
			if p.MatchString(folded) {
				kw.set(&flags)
				break
			}
		}
	}
	return flags
}
