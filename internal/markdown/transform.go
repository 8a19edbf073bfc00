package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// Transform parses the document and builds its rendered node tree.
// It is only called for documents that passed validation; an empty
// document yields an empty root node, not an error.
func (e *engine) Transform(source []byte) (*Node, error) {
	return e.build(parse(source), source)
}

func (e *engine) build(n ast.Node, source []byte) (*Node, error) {
	node := &Node{}

	switch t := n.(type) {
	case *ast.Document:
		node.Type = "document"
	case *ast.Heading:
		node.Type = "heading"
		node.Attributes = map[string]any{"level": t.Level}
	case *ast.Paragraph, *ast.TextBlock:
		node.Type = "paragraph"
	case *ast.Text:
		node.Type = "text"
		node.Text = string(t.Segment.Value(source))
		if t.HardLineBreak() {
			node.Text += "\n"
		} else if t.SoftLineBreak() {
			node.Text += " "
		}
		return node, nil
	case *ast.String:
		node.Type = "text"
		node.Text = string(t.Value)
		return node, nil
	case *ast.Emphasis:
		if t.Level >= 2 {
			node.Type = "strong"
		} else {
			node.Type = "em"
		}
	case *extast.Strikethrough:
		node.Type = "s"
	case *ast.CodeSpan:
		node.Type = "code"
		node.Text = nodeText(t, source)
		return node, nil
	case *ast.FencedCodeBlock:
		return e.buildFence(t, string(t.Language(source)), source)
	case *ast.CodeBlock:
		return e.buildFence(t, "", source)
	case *ast.Blockquote:
		node.Type = "blockquote"
	case *ast.List:
		node.Type = "list"
		node.Attributes = map[string]any{"ordered": t.IsOrdered()}
		if t.IsOrdered() {
			node.Attributes["start"] = t.Start
		}
	case *ast.ListItem:
		node.Type = "item"
	case *ast.Link:
		node.Type = "link"
		node.Attributes = map[string]any{"href": string(t.Destination)}
		if len(t.Title) > 0 {
			node.Attributes["title"] = string(t.Title)
		}
	case *ast.AutoLink:
		href := string(t.URL(source))
		node.Type = "link"
		node.Attributes = map[string]any{"href": href}
		node.Children = []*Node{{Type: "text", Text: href}}
		return node, nil
	case *ast.Image:
		node.Type = "image"
		node.Attributes = map[string]any{
			"src": string(t.Destination),
			"alt": nodeText(t, source),
		}
		if len(t.Title) > 0 {
			node.Attributes["title"] = string(t.Title)
		}
		return node, nil
	case *ast.ThematicBreak:
		node.Type = "hr"
	case *extast.Table:
		node.Type = "table"
	case *extast.TableHeader:
		node.Type = "tr"
		node.Attributes = map[string]any{"header": true}
	case *extast.TableRow:
		node.Type = "tr"
	case *extast.TableCell:
		node.Type = "td"
	case *extast.TaskCheckBox:
		node.Type = "checkbox"
		node.Attributes = map[string]any{"checked": t.IsChecked}
		return node, nil
	default:
		node.Type = strings.ToLower(n.Kind().String())
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		child, err := e.build(c, source)
		if err != nil {
			return nil, err
		}
		// The parser splits runs of plain text into multiple segments;
		// adjacent text nodes merge so the tree carries one node per run.
		if last := len(node.Children) - 1; last >= 0 && isPlainText(child) && isPlainText(node.Children[last]) {
			node.Children[last].Text += child.Text
			continue
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// isPlainText reports whether a node is bare text, carrying no
// attributes or children of its own.
func isPlainText(n *Node) bool {
	return n.Type == "text" && n.Attributes == nil && len(n.Children) == 0
}

// buildFence renders a code block node. When highlighting is enabled
// the block additionally carries pre-rendered HTML for the front end.
func (e *engine) buildFence(n ast.Node, language string, source []byte) (*Node, error) {
	code := blockLines(n, source)

	node := &Node{
		Type: "fence",
		Text: code,
	}
	if language != "" {
		node.Attributes = map[string]any{"language": language}
	}

	if e.highlight {
		var buf bytes.Buffer
		if err := quick.Highlight(&buf, code, language, "html", e.highlightStyle); err != nil {
			return nil, fmt.Errorf("highlight code block: %w", err)
		}
		if node.Attributes == nil {
			node.Attributes = map[string]any{}
		}
		node.Attributes["html"] = buf.String()
	}
	return node, nil
}

// nodeText collects the plain text beneath an inline node.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, source))
		}
	}
	return sb.String()
}

// blockLines concatenates the source lines of a block node.
func blockLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}
