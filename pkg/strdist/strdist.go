// Package strdist implements the Levenshtein edit-distance primitive used
// for thresholded accept/reject decisions during entity resolution. It is
// never used for ranking; callers only ask "is this pair within N edits".
//
// The catalog builder calls Distance once per pair of candidate groups,
// quadratic in the number of distinct raw names, so the bounded form with
// MaxDistance matters: it gives a cheap reject path on long, dissimilar
// strings via length pre-check and branch-and-bound row pruning.
package strdist

import (
	"strings"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/normalize"
)

// Options configures distance computation.
type Options struct {
	// MaxDistance bounds the computation when > 0. Pairs further apart
	// than MaxDistance return MaxDistance + 1 without a full table fill.
	MaxDistance int

	// CaseSensitive disables the default case folding.
	CaseSensitive bool

	// NormalizeDiacritics strips combining marks before comparing, so
	// "Bogotá" and "Bogota" compare equal.
	NormalizeDiacritics bool
}

// Distance returns the Levenshtein edit distance between a and b after
// applying the normalizations selected in opts (nil opts means unbounded,
// case-insensitive, no diacritic stripping).
func Distance(a, b string, opts *Options) int {
	if opts == nil {
		opts = &Options{}
	}

	if !opts.CaseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	if opts.NormalizeDiacritics {
		a = normalize.StripDiacritics(a)
		b = normalize.StripDiacritics(b)
	}

	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Keep the shorter string as the inner dimension for O(min(m,n)) rows.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	m, n := len(ra), len(rb)

	if n == 0 {
		return m
	}

	maxDist := opts.MaxDistance
	if maxDist > 0 && m-n > maxDist {
		return maxDist + 1
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		// Every cell in this row already exceeds the cap; no later row
		// can come back under it.
		if maxDist > 0 && rowMin > maxDist {
			return maxDist + 1
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// WithinDistance reports whether a and b are at most max edits apart using
// the default normalization (case-insensitive, diacritics preserved).
func WithinDistance(a, b string, max int) bool {
	return Distance(a, b, &Options{MaxDistance: max}) <= max
}
