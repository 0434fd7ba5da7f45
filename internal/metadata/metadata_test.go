package metadata

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	xhtml "golang.org/x/net/html"
)

const cv = `<!doctype html>
<html lang="en"><head><title>CV</title></head>
<body class="max-w-4xl p-8">
  <h1 class="text-3xl font-bold">Jane   Doe</h1>
  <p class="text-lg">Staff Software Engineer</p>
  <p>jane@example.com · +1 (555) 123-4567 · <a href="https://github.com/jane">GitHub</a>
     <a href="mailto:jane@example.com">mail</a></p>
  <h2>Experience</h2><p>Acme</p>
  <h2>Education</h2><p>MIT</p>
</body></html>`

func TestExtract(t *testing.T) {
	node, err := xhtml.Parse(strings.NewReader(cv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	meta := NewExtractor(zaptest.NewLogger(t)).Extract(node, "CV", "en")

	if meta.Name != "Jane Doe" {
		t.Errorf("Expected name Jane Doe, got %q", meta.Name)
	}
	if meta.Headline != "Staff Software Engineer" {
		t.Errorf("Unexpected headline %q", meta.Headline)
	}
	if !reflect.DeepEqual(meta.Emails, []string{"jane@example.com"}) {
		t.Errorf("Unexpected emails %q", meta.Emails)
	}
	if !reflect.DeepEqual(meta.Phones, []string{"+1 (555) 123-4567"}) {
		t.Errorf("Unexpected phones %q", meta.Phones)
	}
	if !reflect.DeepEqual(meta.Links, []string{"https://github.com/jane"}) {
		t.Errorf("Unexpected links %q", meta.Links)
	}
	if !reflect.DeepEqual(meta.Sections, []string{"Experience", "Education"}) {
		t.Errorf("Unexpected sections %q", meta.Sections)
	}
	if meta.Author() != "Jane Doe" || meta.Keywords() != "Experience, Education" {
		t.Errorf("Unexpected author %q keywords %q", meta.Author(), meta.Keywords())
	}
}

func TestExtractEmpty(t *testing.T) {
	meta := NewExtractor(nil).Extract(nil, " Resume ", "")
	if meta.Title != "Resume" || meta.Name != "" {
		t.Errorf("Unexpected metadata %+v", meta)
	}

	var missing *Metadata
	if missing.Author() != "" || missing.Keywords() != "" {
		t.Errorf("Expected nil metadata to be safe")
	}
}
