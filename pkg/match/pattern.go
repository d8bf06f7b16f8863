// Package match implements the two matching layers of entity resolution:
// the config-driven variation pattern engine, which pulls a variation token
// ("Large", "12 pcs") out of a raw item name, and the curated product group
// matcher, which overrides automatic clustering for configured product
// families. Both are compiled once from config and are read-only
// afterwards; using either before compilation is a programming error and
// panics rather than silently returning empty results.
package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/normalize"
)

// Extraction is the result of applying a variation pattern to a raw name.
type Extraction struct {
	// BaseName is the raw name with the matched span removed.
	BaseName string
	// Variation is the rendered variation text, e.g. "Large".
	Variation string
	// Type is the category tag of the pattern that matched.
	Type catalog.VariationType
}

// PatternSet holds the compiled variation patterns and the abbreviation
// map. Compile once with CompilePatterns; the set is immutable afterwards.
type PatternSet struct {
	patterns []compiledPattern
	abbrevs  map[string]string
	ready    bool
}

type compiledPattern struct {
	name string
	re   *regexp.Regexp
	typ  catalog.VariationType
	tmpl []formatSegment
}

// formatSegment is one piece of a parsed format template: either a literal
// or a capture-group reference with an optional transformer.
type formatSegment struct {
	literal   string
	group     int
	transform string
}

// CompilePatterns compiles the variation-pattern configuration. Each regex
// is compiled exactly once; template strings are parsed into renderers.
func CompilePatterns(cfg *config.PatternConfig) (*PatternSet, error) {
	if cfg == nil {
		return nil, errors.NewConfigError("variation-patterns", "nil pattern config", nil)
	}

	ps := &PatternSet{
		patterns: make([]compiledPattern, 0, len(cfg.Patterns)),
		abbrevs:  make(map[string]string, len(cfg.Abbreviations)),
		ready:    true,
	}

	for k, v := range cfg.Abbreviations {
		ps.abbrevs[normalize.Fold(k)] = v
	}

	for _, entry := range cfg.Patterns {
		expr := entry.Regex
		if strings.Contains(entry.Flags, "i") && !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.NewConfigError("variation-patterns",
				"invalid regex in pattern "+entry.Name, err)
		}
		ps.patterns = append(ps.patterns, compiledPattern{
			name: entry.Name,
			re:   re,
			typ:  catalog.VariationType(entry.Type),
			tmpl: parseTemplate(entry.Format),
		})
	}

	return ps, nil
}

// Extract tries each pattern in configured order against the raw name. The
// first regex match wins: the matched span is stripped to form BaseName and
// the format template is rendered against the match. ok is false when no
// pattern matches, in which case the caller uses the full name as the base.
func (ps *PatternSet) Extract(name string) (Extraction, bool) {
	ps.mustBeReady()

	for _, p := range ps.patterns {
		loc := p.re.FindStringSubmatchIndex(name)
		if loc == nil {
			continue
		}

		base := strings.TrimSpace(name[:loc[0]] + name[loc[1]:])
		base = strings.Trim(base, "-–, ")

		groups := p.re.FindStringSubmatch(name)
		variation := renderTemplate(p.tmpl, groups)

		return Extraction{
			BaseName:  base,
			Variation: strings.TrimSpace(variation),
			Type:      p.typ,
		}, true
	}

	return Extraction{}, false
}

// ExpandAbbrev expands configured abbreviations word by word, preserving
// words without an entry.
func (ps *PatternSet) ExpandAbbrev(s string) string {
	ps.mustBeReady()

	words := strings.Fields(s)
	for i, w := range words {
		if full, ok := ps.abbrevs[normalize.Fold(w)]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

// NormalizeVariation canonicalizes extracted variation text: abbreviations
// are expanded, words are capitalized, and the variation type is refined
// when the hint is empty.
func (ps *PatternSet) NormalizeVariation(text string, hint catalog.VariationType) (string, catalog.VariationType) {
	ps.mustBeReady()

	expanded := ps.ExpandAbbrev(strings.TrimSpace(text))
	words := strings.Fields(expanded)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	out := strings.Join(words, " ")

	typ := hint
	if typ == "" {
		typ = inferVariationType(out)
	}
	return out, typ
}

func (ps *PatternSet) mustBeReady() {
	if ps == nil || !ps.ready {
		panic(&errors.NotInitializedError{Component: "variation pattern set"})
	}
}

// parseTemplate splits a format string like "{1|size_expand} pack" into
// literal and capture-reference segments.
func parseTemplate(format string) []formatSegment {
	var segs []formatSegment
	rest := format
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			break
		}
		closing += open

		if open > 0 {
			segs = append(segs, formatSegment{literal: rest[:open]})
		}

		ref := rest[open+1 : closing]
		groupPart, transform, _ := strings.Cut(ref, "|")
		if group, err := strconv.Atoi(groupPart); err == nil && group > 0 {
			segs = append(segs, formatSegment{group: group, transform: transform})
		} else {
			// Not a capture reference; keep the braces verbatim.
			segs = append(segs, formatSegment{literal: rest[open : closing+1]})
		}
		rest = rest[closing+1:]
	}
	if rest != "" {
		segs = append(segs, formatSegment{literal: rest})
	}
	return segs
}

// renderTemplate substitutes capture groups into the parsed template.
// Missing capture groups render as empty string; unknown transformers pass
// the captured text through unchanged. Both are defined behavior, not
// errors.
func renderTemplate(segs []formatSegment, groups []string) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.group == 0 {
			b.WriteString(seg.literal)
			continue
		}
		if seg.group >= len(groups) {
			continue
		}
		b.WriteString(applyTransform(seg.transform, groups[seg.group]))
	}
	return b.String()
}

// sizeExpansions maps abbreviated size tokens to canonical spellings.
var sizeExpansions = map[string]string{
	"lg":     "Large",
	"lrg":    "Large",
	"large":  "Large",
	"sm":     "Small",
	"sml":    "Small",
	"small":  "Small",
	"med":    "Medium",
	"md":     "Medium",
	"medium": "Medium",
}

// strengthExpansions maps abbreviated strength tokens to canonical
// spellings.
var strengthExpansions = map[string]string{
	"single": "Single",
	"sgl":    "Single",
	"double": "Double",
	"dbl":    "Double",
	"triple": "Triple",
	"trpl":   "Triple",
}

func applyTransform(name, text string) string {
	switch name {
	case "":
		return text
	case "capitalize":
		return capitalize(text)
	case "size_expand":
		if full, ok := sizeExpansions[normalize.Fold(text)]; ok {
			return full
		}
		return capitalize(text)
	case "strength_expand":
		if full, ok := strengthExpansions[normalize.Fold(text)]; ok {
			return full
		}
		return capitalize(text)
	default:
		return text
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// inferVariationType guesses a refined type for variation text that arrived
// without one (Square sub-variations, group-matcher remainders).
func inferVariationType(text string) catalog.VariationType {
	folded := normalize.Fold(text)
	for _, w := range strings.Fields(folded) {
		if _, ok := sizeExpansions[w]; ok {
			return catalog.VariationSize
		}
		if _, ok := strengthExpansions[w]; ok {
			return catalog.VariationStrength
		}
	}
	if strings.IndexFunc(folded, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
		return catalog.VariationQuantity
	}
	return catalog.VariationSemantic
}
