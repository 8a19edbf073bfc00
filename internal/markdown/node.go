package markdown

// Node is one node of a rendered document tree. The tree is what
// responses carry in place of the raw markup AST: plain types a front
// end can walk and render directly.
//
// Attributes marshal with sorted keys, so rendering the same document
// twice yields byte-identical JSON.
type Node struct {
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
	Text       string         `json:"text,omitempty"`
}

// Issue is a single validation finding against a document.
type Issue struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
