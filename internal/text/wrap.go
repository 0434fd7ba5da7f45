package text

import (
	"math"
	"strings"
	"unicode/utf8"
)

// WrapOptions controls line breaking.
type WrapOptions struct {
	EnableHyphenation bool
	// Words shorter than this (in runes) are never hyphenated.
	MinWordLength int
	// Hyphenator supplies break points; nil disables hyphenation.
	Hyphenator *Hyphenator
}

// DefaultMinWordLength is the shortest word considered for hyphenation.
const DefaultMinWordLength = 6

// Wrap breaks s into lines no wider than maxWidth using a greedy fill.
// A word that still overflows after hyphenation is placed on its own line.
// The result is never empty; blank input yields a single empty line.
// A non-positive width or a broken measurer disables wrapping.
func Wrap(s string, maxWidth, fontSize float64, fontName string, opts WrapOptions, m Measurer) []string {
	tokens := Tokens(s)
	if len(tokens) == 0 {
		return []string{""}
	}
	if m == nil || math.IsNaN(maxWidth) || maxWidth <= 0 {
		return []string{strings.Join(tokens, " ")}
	}

	anomaly := false
	measure := func(line string) float64 {
		w := m.MeasureText(line, fontSize, fontName)
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			anomaly = true
		}
		return w
	}

	var (
		lines   []string
		current string
	)
	for _, tok := range tokens {
		for {
			candidate := tok
			if current != "" {
				candidate = current + " " + tok
			}
			w := measure(candidate)
			if anomaly {
				return []string{strings.Join(tokens, " ")}
			}
			if w <= maxWidth {
				current = candidate
				break
			}

			if opts.EnableHyphenation && hyphenatable(tok, opts) {
				if prefix, suffix, ok := splitToFit(tok, current, maxWidth, opts.Hyphenator, measure); ok {
					if anomaly {
						return []string{strings.Join(tokens, " ")}
					}
					if current != "" {
						prefix = current + " " + prefix
					}
					lines = append(lines, strings.TrimSpace(prefix+"-"))
					current = ""
					tok = suffix
					continue
				}
			}

			if current == "" {
				// a lone token wider than the line is kept whole
				current = tok
				break
			}
			lines = append(lines, strings.TrimSpace(current))
			current = ""
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, strings.TrimSpace(current))
	}
	return lines
}

func hyphenatable(tok string, opts WrapOptions) bool {
	if opts.Hyphenator == nil || strings.ContainsRune(tok, ' ') {
		return false
	}
	minLen := opts.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	return utf8.RuneCountInString(tok) >= minLen
}

// splitToFit picks the rightmost break point of tok whose prefix plus a
// hyphen still fits after current.
func splitToFit(tok, current string, maxWidth float64, h *Hyphenator, measure func(string) float64) (string, string, bool) {
	points := h.BreakPoints(tok)
	runes := []rune(tok)
	for i := len(points) - 1; i >= 0; i-- {
		prefix := string(runes[:points[i]])
		line := prefix + "-"
		if current != "" {
			line = current + " " + line
		}
		if measure(line) <= maxWidth {
			return prefix, string(runes[points[i]:]), true
		}
	}
	return "", "", false
}

// Tokens splits s on whitespace and glues short dash separators to their
// neighbours, so "1997 – 2002" stays one unbreakable token.
func Tokens(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		for i+1 < len(fields) && isDashSeparator(fields[i+1]) {
			tok += " " + fields[i+1]
			i++
			if i+1 < len(fields) {
				tok += " " + fields[i+1]
				i++
			}
		}
		out = append(out, tok)
	}
	return out
}

func isDashSeparator(s string) bool {
	if utf8.RuneCountInString(s) > 2 {
		return false
	}
	for _, r := range s {
		switch r {
		case '-', '–', '—':
		default:
			return false
		}
	}
	return true
}
