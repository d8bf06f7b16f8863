package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/normalize"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/strdist"
)

// sameLengthVetoMax is the word length at or below which a fuzzy match
// between equal-length words is rejected. Short same-length words are
// disproportionately likely to be distinct real words ("wings"/"rings")
// rather than typos. Tuned empirically; preserved as-is for behavioral
// compatibility.
const sameLengthVetoMax = 6

// GroupMatch is a successful curated-group hit.
type GroupMatch struct {
	// BaseName is the configured canonical name of the group.
	BaseName string
	// Variation is the remainder of the name once the matched suffix is
	// removed, or the full name for keyword matches. Empty means the raw
	// string names the base product itself.
	Variation string
	// Type of the derived variation when one exists.
	VariationOK bool
}

// GroupSet holds the compiled curated product groups. Compile once with
// CompileGroups; groups are tried in configured order and the first match
// wins.
type GroupSet struct {
	groups []compiledGroup
	ready  bool
}

type compiledGroup struct {
	baseName string
	suffix   string   // folded; may be a multi-word phrase
	keywords []string // folded
}

// CompileGroups compiles the product-group configuration.
func CompileGroups(cfg *config.GroupConfig) (*GroupSet, error) {
	if cfg == nil {
		return nil, errors.NewConfigError("product-groups", "nil group config", nil)
	}

	gs := &GroupSet{
		groups: make([]compiledGroup, 0, len(cfg.Groups)),
		ready:  true,
	}
	for _, g := range cfg.Groups {
		cg := compiledGroup{
			baseName: g.BaseName,
			suffix:   normalize.Fold(g.Suffix),
		}
		for _, kw := range g.Keywords {
			cg.keywords = append(cg.keywords, normalize.Fold(kw))
		}
		gs.groups = append(gs.groups, cg)
	}
	return gs, nil
}

// Match tries each group in configured order against the raw product name
// and returns the first hit, or nil when no group accepts the name.
func (gs *GroupSet) Match(name string) *GroupMatch {
	if gs == nil || !gs.ready {
		panic(&errors.NotInitializedError{Component: "product group set"})
	}

	for _, g := range gs.groups {
		if m := g.match(name); m != nil {
			return m
		}
	}
	return nil
}

// match applies the per-group rule ladder: exact suffix, fuzzy suffix,
// exact keyword, fuzzy keyword.
func (g *compiledGroup) match(name string) *GroupMatch {
	words := splitWords(name)

	if g.suffix != "" {
		if containsWholePhrase(name, g.suffix) {
			return g.suffixResult(name, g.suffix)
		}
		if !strings.Contains(g.suffix, " ") {
			if matched, ok := fuzzyWordMatch(words, g.suffix); ok {
				return g.suffixResult(name, matched)
			}
		}
	}

	for _, kw := range g.keywords {
		if containsWholePhrase(name, kw) {
			return g.keywordResult(name)
		}
	}
	for _, kw := range g.keywords {
		if strings.Contains(kw, " ") {
			continue
		}
		if _, ok := fuzzyWordMatch(words, kw); ok {
			return g.keywordResult(name)
		}
	}

	return nil
}

// suffixResult removes the matched suffix word(s), anchored to the end of
// the name, and derives the variation from what remains. A remainder that
// is empty or equals the suffix means the string names the base product
// itself.
func (g *compiledGroup) suffixResult(name, matched string) *GroupMatch {
	remainder := trimSuffixWord(name, matched)
	remainder = strings.Trim(strings.TrimSpace(remainder), "-–, ")

	if remainder == "" || normalize.Fold(remainder) == g.suffix {
		return &GroupMatch{BaseName: g.baseName}
	}
	return &GroupMatch{
		BaseName:    g.baseName,
		Variation:   remainder,
		VariationOK: true,
	}
}

// keywordResult uses the trimmed original name as the variation unless it
// equals the base name.
func (g *compiledGroup) keywordResult(name string) *GroupMatch {
	trimmed := strings.TrimSpace(name)
	if normalize.Fold(trimmed) == normalize.Fold(g.baseName) {
		return &GroupMatch{BaseName: g.baseName}
	}
	return &GroupMatch{
		BaseName:    g.baseName,
		Variation:   trimmed,
		VariationOK: true,
	}
}

// fuzzyWordMatch finds a word within the length-dependent edit-distance
// threshold of target: 1 for words of length <= 5, 2 for longer words.
// Short words have many minimal pairs, so the tighter cap avoids false
// merges. A candidate the same length as the target is vetoed when that
// length is at most sameLengthVetoMax.
func fuzzyWordMatch(words []string, target string) (string, bool) {
	targetLen := len([]rune(target))
	for _, w := range words {
		folded := normalize.Fold(w)
		wordLen := len([]rune(folded))

		threshold := 2
		if wordLen <= 5 {
			threshold = 1
		}
		if !strdist.WithinDistance(folded, target, threshold) {
			continue
		}
		if wordLen == targetLen && wordLen <= sameLengthVetoMax {
			continue
		}
		return w, true
	}
	return "", false
}

// splitWords splits a name into letter/digit runs.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsWholePhrase reports whether needle occurs in haystack bounded by
// word breaks on both sides. Comparison is case-insensitive.
func containsWholePhrase(haystack, needle string) bool {
	h := normalize.Fold(haystack)
	n := normalize.Fold(needle)
	if n == "" {
		return false
	}

	for start := 0; ; {
		idx := strings.Index(h[start:], n)
		if idx < 0 {
			return false
		}
		idx += start

		before, _ := utf8.DecodeLastRuneInString(h[:idx])
		beforeOK := idx == 0 || isWordBreak(before)
		after, _ := utf8.DecodeRuneInString(h[idx+len(n):])
		afterOK := idx+len(n) == len(h) || isWordBreak(after)
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// trimSuffixWord removes word (possibly a phrase), whole-word anchored to
// the end of name, ignoring trailing punctuation. The name is returned
// unchanged when word is not at the end.
func trimSuffixWord(name, word string) string {
	targets := strings.Fields(normalize.Fold(word))
	rest := name
	for i := len(targets) - 1; i >= 0; i-- {
		trimmed := strings.TrimRightFunc(rest, isWordBreak)
		start := lastWordStart(trimmed)
		if !strings.EqualFold(normalize.Fold(trimmed[start:]), targets[i]) {
			return name
		}
		rest = trimmed[:start]
	}
	return rest
}

// lastWordStart returns the byte offset where the final letter/digit run
// of s begins.
func lastWordStart(s string) int {
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if isWordBreak(r) {
			break
		}
		i -= size
	}
	return i
}
