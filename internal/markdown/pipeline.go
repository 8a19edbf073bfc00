package markdown

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidContent is returned when a document fails validation. Its
// text is the exact message clients receive; the individual validation
// issues are logged server-side only.
var ErrInvalidContent = errors.New("Invalid content")

// Pipeline runs document bodies through validation and transformation,
// failing closed: a document with any validation issue produces no
// rendered tree.
type Pipeline struct {
	engine Engine
	logger *slog.Logger
}

// NewPipeline creates a document pipeline over the given engine.
func NewPipeline(engine Engine, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		engine: engine,
		logger: logger.With("system", "pipeline"),
	}
}

// Render validates source and, only when validation reports zero
// issues, transforms it into a rendered tree. The attrs are appended to
// the validation failure log entry to identify the offending entry.
func (p *Pipeline) Render(source []byte, attrs ...any) (*Node, error) {
	if issues := p.engine.Validate(source); len(issues) > 0 {
		args := append([]any{"issues", issues}, attrs...)
		p.logger.Error("document validation failed", args...)
		return nil, ErrInvalidContent
	}

	node, err := p.engine.Transform(source)
	if err != nil {
		return nil, fmt.Errorf("transform document: %w", err)
	}
	return node, nil
}
