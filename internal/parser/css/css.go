package css

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses inline style attributes into declarations
type Parser struct {
	log *zap.Logger
}

// Declaration represents a CSS declaration (property-value pair)
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// NewParser creates a new inline style parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css")}
}

// ParseInline parses the body of a style="..." attribute.
// Invalid declarations are skipped, parsing never fails.
func (p *Parser) ParseInline(content string) []*Declaration {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	parser := css.NewParser(parse.NewInputString(content), true)
	var result []*Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("Inline style parse error", zap.String("style", content), zap.Error(err))
			}
			return result
		case css.DeclarationGrammar:
			if decl := newDeclaration(string(data), parser.Values()); decl != nil {
				result = append(result, decl)
			}
		default:
			p.log.Debug("Skipping inline style grammar", zap.Stringer("grammar", gt))
		}
	}
}

// newDeclaration joins value tokens and splits off a trailing !important
func newDeclaration(property string, values []css.Token) *Declaration {
	property = strings.ToLower(strings.TrimSpace(property))
	if property == "" {
		return nil
	}

	var b strings.Builder
	for _, v := range values {
		if v.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(v.Data)
	}
	value := strings.TrimSpace(b.String())

	important := false
	if lower := strings.ToLower(value); strings.HasSuffix(lower, "!important") {
		important = true
		value = strings.TrimSpace(value[:len(value)-len("!important")])
	}
	if value == "" {
		return nil
	}

	return &Declaration{
		Property:  property,
		Value:     value,
		Important: important,
	}
}
