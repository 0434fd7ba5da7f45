package text

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed dictionaries/*.txt
var dictionaryFiles embed.FS

// Break points closer than this to either end of a word are suppressed.
const (
	leftHyphenMin  = 2
	rightHyphenMin = 2
)

// Some languages ship their patterns under a more specific name.
var langMap = map[string]string{
	"en":    "en-us",
	"en-gb": "en-us",
}

// Hyphenator finds TeX-style (Liang) hyphenation points in single words.
type Hyphenator struct {
	patterns   *trie
	exceptions map[string][]int
	language   string
}

func tryLoadDictionary(name, suffix string) ([]byte, error) {
	return dictionaryFiles.ReadFile(fmt.Sprintf("dictionaries/hyph-%s.%s.txt", name, suffix))
}

// NewHyphenator loads the embedded dictionary that best matches lang.
// It returns nil when no dictionary is available, which disables hyphenation.
func NewHyphenator(lang language.Tag, log *zap.Logger) *Hyphenator {
	if log == nil {
		log = zap.NewNop()
	}

	candidates := []string{strings.ToLower(lang.String())}
	if base, confidence := lang.Base(); confidence != language.No {
		candidates = append(candidates, strings.ToLower(base.String()))
	} else {
		log.Warn("Unable to determine language base", zap.Stringer("tag", lang))
	}

	var (
		name     string
		patterns []byte
	)
	for _, c := range candidates {
		for _, n := range []string{c, langMap[c]} {
			if n == "" {
				continue
			}
			data, err := tryLoadDictionary(n, "pat")
			if err == nil {
				name, patterns = n, data
				break
			}
		}
		if name != "" {
			break
		}
	}
	if name == "" {
		log.Warn("Unable to find suitable hyphenation dictionary, turning off hyphenation", zap.Stringer("language", lang))
		return nil
	}

	exceptions, err := tryLoadDictionary(name, "hyp")
	if err != nil {
		log.Debug("No exceptions dictionary found, leaving empty", zap.String("name", name))
	}

	h, err := LoadHyphenator(strings.NewReader(string(patterns)), strings.NewReader(string(exceptions)))
	if err != nil {
		log.Warn("Unable to load hyphenation dictionary", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	h.language = name
	log.Debug("Hyphenation dictionary loaded", zap.String("name", name), zap.Int("nodes", h.patterns.size()))
	return h
}

// LoadHyphenator builds a hyphenator from whitespace separated TeX patterns
// and an optional list of pre-hyphenated exception words ("ta-ble").
// Lines starting with '%' are comments.
func LoadHyphenator(patterns, exceptions io.Reader) (*Hyphenator, error) {
	h := &Hyphenator{patterns: newTrie(), exceptions: make(map[string][]int)}
	if err := scanWords(patterns, h.patterns.addPattern); err != nil {
		return nil, fmt.Errorf("unable to read patterns: %w", err)
	}
	if exceptions != nil {
		if err := scanWords(exceptions, h.addException); err != nil {
			return nil, fmt.Errorf("unable to read exceptions: %w", err)
		}
	}
	return h, nil
}

func scanWords(r io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		for _, w := range strings.Fields(line) {
			fn(w)
		}
	}
	return sc.Err()
}

func (h *Hyphenator) addException(s string) {
	var (
		points []int
		n      int
	)
	for _, r := range s {
		if r == '-' {
			points = append(points, n)
			continue
		}
		n++
	}
	h.exceptions[strings.ToLower(strings.ReplaceAll(s, "-", ""))] = points
}

// Language returns the name of the loaded dictionary.
func (h *Hyphenator) Language() string {
	if h == nil {
		return ""
	}
	return h.language
}

// BreakPoints returns the rune offsets inside word where a hyphen may be
// inserted, in ascending order. Leading and trailing punctuation is ignored
// and offsets refer to the original word.
func (h *Hyphenator) BreakPoints(word string) []int {
	if h == nil {
		return nil
	}
	runes := []rune(word)
	start, end := 0, len(runes)
	for start < end && !unicode.IsLetter(runes[start]) {
		start++
	}
	for end > start && !unicode.IsLetter(runes[end-1]) {
		end--
	}
	core := runes[start:end]
	if len(core) < leftHyphenMin+rightHyphenMin {
		return nil
	}
	for _, r := range core {
		if !unicode.IsLetter(r) {
			// compound words and identifiers are broken elsewhere, if at all
			return nil
		}
	}

	lower := make([]rune, len(core))
	for i, r := range core {
		lower[i] = unicode.ToLower(r)
	}

	if points, ok := h.exceptions[string(lower)]; ok {
		out := make([]int, 0, len(points))
		for _, p := range points {
			out = append(out, start+p)
		}
		return out
	}

	// priorities[k] belongs to the gap before rune k of ".word."
	padded := make([]rune, 0, len(lower)+2)
	padded = append(padded, '.')
	padded = append(padded, lower...)
	padded = append(padded, '.')
	priorities := make([]int, len(padded)+1)
	for i := range padded {
		h.patterns.prefixes(padded[i:], func(values []int) {
			for k, v := range values {
				if v > priorities[i+k] {
					priorities[i+k] = v
				}
			}
		})
	}

	var out []int
	for m := leftHyphenMin; m <= len(lower)-rightHyphenMin; m++ {
		if priorities[m+1]%2 == 1 {
			out = append(out, start+m)
		}
	}
	return out
}

// Hyphenate inserts hyphen at every break point of every word in s.
func (h *Hyphenator) Hyphenate(s, hyphen string) string {
	if h == nil {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		points := h.BreakPoints(w)
		if len(points) == 0 {
			continue
		}
		runes := []rune(w)
		var b strings.Builder
		prev := 0
		for _, p := range points {
			b.WriteString(string(runes[prev:p]))
			b.WriteString(hyphen)
			prev = p
		}
		b.WriteString(string(runes[prev:]))
		words[i] = b.String()
	}
	return strings.Join(words, " ")
}
