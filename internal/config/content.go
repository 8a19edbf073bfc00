package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvContentMaxHeadingDepth overrides the deepest allowed heading level.
	EnvContentMaxHeadingDepth = "CONTENT_MAX_HEADING_DEPTH"

	// EnvContentAllowedSchemes overrides the allowed link/image URL schemes (comma-separated).
	EnvContentAllowedSchemes = "CONTENT_ALLOWED_SCHEMES"

	// EnvContentHighlight overrides the code highlighting flag.
	EnvContentHighlight = "CONTENT_HIGHLIGHT"

	// EnvContentHighlightStyle overrides the code highlighting style name.
	EnvContentHighlightStyle = "CONTENT_HIGHLIGHT_STYLE"
)

// ContentConfig contains document validation and rendering rules.
type ContentConfig struct {
	// MaxHeadingDepth is the deepest heading level entries may use.
	MaxHeadingDepth int `toml:"max_heading_depth"`

	// AllowedSchemes lists URL schemes permitted in links and images.
	// Relative and fragment destinations are always allowed.
	AllowedSchemes []string `toml:"allowed_schemes"`

	// Highlight pre-renders fenced code blocks to highlighted HTML.
	Highlight bool `toml:"highlight"`

	// HighlightStyle selects the chroma style used when Highlight is set.
	HighlightStyle string `toml:"highlight_style"`
}

// Finalize applies defaults, loads environment overrides, and validates the content configuration.
func (c *ContentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ContentConfig) Merge(overlay *ContentConfig) {
	c.Highlight = overlay.Highlight

	if overlay.MaxHeadingDepth != 0 {
		c.MaxHeadingDepth = overlay.MaxHeadingDepth
	}
	if overlay.AllowedSchemes != nil {
		c.AllowedSchemes = overlay.AllowedSchemes
	}
	if overlay.HighlightStyle != "" {
		c.HighlightStyle = overlay.HighlightStyle
	}
}

func (c *ContentConfig) loadDefaults() {
	if c.MaxHeadingDepth == 0 {
		c.MaxHeadingDepth = 4
	}
	if len(c.AllowedSchemes) == 0 {
		c.AllowedSchemes = []string{"http", "https", "mailto"}
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "github"
	}
}

func (c *ContentConfig) loadEnv() {
	if v := os.Getenv(EnvContentMaxHeadingDepth); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			c.MaxHeadingDepth = depth
		}
	}

	if v := os.Getenv(EnvContentAllowedSchemes); v != "" {
		schemes := strings.Split(v, ",")
		c.AllowedSchemes = make([]string, 0, len(schemes))
		for _, scheme := range schemes {
			if trimmed := strings.TrimSpace(scheme); trimmed != "" {
				c.AllowedSchemes = append(c.AllowedSchemes, trimmed)
			}
		}
	}

	if v := os.Getenv(EnvContentHighlight); v != "" {
		if highlight, err := strconv.ParseBool(v); err == nil {
			c.Highlight = highlight
		}
	}

	if v := os.Getenv(EnvContentHighlightStyle); v != "" {
		c.HighlightStyle = v
	}
}

func (c *ContentConfig) validate() error {
	if c.MaxHeadingDepth < 1 || c.MaxHeadingDepth > 6 {
		return fmt.Errorf("invalid max_heading_depth: %d (must be 1-6)", c.MaxHeadingDepth)
	}
	return nil
}
