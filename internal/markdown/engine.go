// Package markdown implements the document engine: parsing markup
// document bodies, validating them against the content rules, and
// transforming them into rendered node trees.
package markdown

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/0xi4o/cms-api/internal/config"
)

// Engine is the document engine capability: validate a raw markup
// document against the content rules, or transform it into a rendered
// node tree. Transform is deterministic; the same document always
// yields the same tree.
type Engine interface {
	Validate(source []byte) []Issue
	Transform(source []byte) (*Node, error)
}

// parserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

type engine struct {
	maxHeadingDepth int
	allowedSchemes  map[string]bool
	highlight       bool
	highlightStyle  string
}

// New creates the document engine from the content rule configuration.
func New(cfg *config.ContentConfig) Engine {
	schemes := make(map[string]bool, len(cfg.AllowedSchemes))
	for _, scheme := range cfg.AllowedSchemes {
		schemes[strings.ToLower(scheme)] = true
	}

	return &engine{
		maxHeadingDepth: cfg.MaxHeadingDepth,
		allowedSchemes:  schemes,
		highlight:       cfg.Highlight,
		highlightStyle:  cfg.HighlightStyle,
	}
}

func parse(source []byte) ast.Node {
	return getParser().Parser().Parse(text.NewReader(source))
}

// Validate parses the document and walks its AST, collecting rule
// violations. An empty result means the document may be transformed.
func (e *engine) Validate(source []byte) []Issue {
	var issues []Issue

	ast.Walk(parse(source), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Heading:
			if t.Level > e.maxHeadingDepth {
				issues = append(issues, Issue{
					Rule:    "heading-depth",
					Message: fmt.Sprintf("heading level %d exceeds maximum %d", t.Level, e.maxHeadingDepth),
				})
			}
		case *ast.Link:
			issues = e.checkDestination(issues, "link-scheme", string(t.Destination))
		case *ast.AutoLink:
			issues = e.checkDestination(issues, "link-scheme", string(t.URL(source)))
		case *ast.Image:
			issues = e.checkDestination(issues, "image-scheme", string(t.Destination))
		case *ast.HTMLBlock:
			issues = append(issues, Issue{
				Rule:    "raw-html",
				Message: "raw HTML blocks are not allowed",
			})
		case *ast.RawHTML:
			issues = append(issues, Issue{
				Rule:    "raw-html",
				Message: "inline raw HTML is not allowed",
			})
		}
		return ast.WalkContinue, nil
	})

	return issues
}

// checkDestination validates a link or image destination. Relative and
// fragment destinations pass; absolute URLs must use an allowed scheme.
func (e *engine) checkDestination(issues []Issue, rule, destination string) []Issue {
	u, err := url.Parse(destination)
	if err != nil {
		return append(issues, Issue{
			Rule:    rule,
			Message: fmt.Sprintf("invalid destination %q", destination),
		})
	}

	if u.Scheme != "" && !e.allowedSchemes[strings.ToLower(u.Scheme)] {
		return append(issues, Issue{
			Rule:    rule,
			Message: fmt.Sprintf("scheme %q is not allowed in %q", u.Scheme, destination),
		})
	}
	return issues
}
