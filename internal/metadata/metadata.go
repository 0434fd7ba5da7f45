// Package metadata extracts document facts from a CV: the candidate's name,
// headline, contact points and section titles. The renderer turns them into
// PDF document info and the CLI prints them.
package metadata

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	xhtml "golang.org/x/net/html"
)

// maxHeadline bounds the text taken as a headline, longer runs are a summary
const maxHeadline = 120

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{7,}\d`)
)

// Metadata describes a CV document
type Metadata struct {
	Title    string   `yaml:"title,omitempty"`
	Language string   `yaml:"language,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Headline string   `yaml:"headline,omitempty"`
	Emails   []string `yaml:"emails,omitempty"`
	Phones   []string `yaml:"phones,omitempty"`
	Links    []string `yaml:"links,omitempty"`
	Sections []string `yaml:"sections,omitempty"`
}

// Author returns the name, falling back to the title
func (m *Metadata) Author() string {
	if m == nil {
		return ""
	}
	if m.Name != "" {
		return m.Name
	}
	return m.Title
}

// Keywords joins the section titles for the PDF keywords entry
func (m *Metadata) Keywords() string {
	if m == nil {
		return ""
	}
	return strings.Join(m.Sections, ", ")
}

// Extractor pulls Metadata out of a parsed markup tree
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates a metadata extractor
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("metadata")}
}

// Extract reads metadata from the document node. title and lang come from
// the markup head, they are used when the body does not say better.
func (e *Extractor) Extract(node *xhtml.Node, title, lang string) *Metadata {
	meta := &Metadata{Title: clean(title), Language: lang}
	if node == nil {
		return meta
	}
	doc := goquery.NewDocumentFromNode(node)

	h1 := doc.Find("h1").First()
	meta.Name = clean(h1.Text())
	if meta.Name != "" {
		h1.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := clean(s.Text())
			if text == "" {
				return true
			}
			if len(text) <= maxHeadline {
				meta.Headline = text
			}
			return false
		})
	}

	seen := map[string]bool{}
	add := func(list *[]string, v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		*list = append(*list, v)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "mailto:"):
			add(&meta.Emails, strings.SplitN(strings.TrimPrefix(href, "mailto:"), "?", 2)[0])
		case strings.HasPrefix(href, "tel:"):
			add(&meta.Phones, strings.TrimPrefix(href, "tel:"))
		case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
			add(&meta.Links, href)
		}
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	text := body.Text()
	for _, m := range emailPattern.FindAllString(text, -1) {
		add(&meta.Emails, m)
	}
	for _, m := range phonePattern.FindAllString(text, -1) {
		if digits(m) >= 9 {
			add(&meta.Phones, strings.TrimSpace(m))
		}
	}

	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if t := clean(s.Text()); t != "" {
			meta.Sections = append(meta.Sections, t)
		}
	})

	if meta.Title == "" {
		meta.Title = meta.Name
	}
	e.log.Debug("Extracted metadata",
		zap.String("name", meta.Name),
		zap.Int("emails", len(meta.Emails)),
		zap.Int("sections", len(meta.Sections)))
	return meta
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
