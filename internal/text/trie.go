package text

import (
	"unicode"
)

// A trie indexes hyphenation patterns by rune. Leaf nodes carry the
// inter-letter priority values of the pattern that ends there.
type trie struct {
	leaf     bool
	values   []int
	children map[rune]*trie
}

func newTrie() *trie {
	return &trie{children: make(map[rune]*trie)}
}

// add stores letters with its priority values, replacing any previous values.
func (p *trie) add(letters []rune, values []int) {
	node := p
	for _, r := range letters {
		next := node.children[r]
		if next == nil {
			next = newTrie()
			node.children[r] = next
		}
		node = next
	}
	node.leaf = true
	node.values = values
}

// addPattern parses a TeX pattern such as ".hy3ph" or "n2at". A digit
// before letter i is the priority of a break before that letter, a trailing
// digit the priority after the last letter. Missing digits are zero.
func (p *trie) addPattern(s string) {
	letters := make([]rune, 0, len(s))
	values := make([]int, 1, len(s)+1)
	for _, r := range s {
		if unicode.IsDigit(r) {
			values[len(letters)] = int(r - '0')
			continue
		}
		letters = append(letters, unicode.ToLower(r))
		values = append(values, 0)
	}
	if len(letters) == 0 {
		return
	}
	p.add(letters, values)
}

// prefixes calls fn for every stored pattern that is a prefix of s.
func (p *trie) prefixes(s []rune, fn func(values []int)) {
	node := p
	for _, r := range s {
		node = node.children[r]
		if node == nil {
			return
		}
		if node.leaf {
			fn(node.values)
		}
	}
}

// size counts all nodes below the root.
func (p *trie) size() int {
	n := len(p.children)
	for _, child := range p.children {
		n += child.size()
	}
	return n
}
