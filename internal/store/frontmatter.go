package store

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// splitFrontmatter separates an entry file into its YAML frontmatter and
// markup body. Files without a frontmatter block decode as an empty
// field set with the whole file as body; an empty block ("---"
// immediately closed by "---") is valid and yields no fields.
func splitFrontmatter(data []byte) (meta, body []byte, err error) {
	trimmed := bytes.TrimLeft(data, "\ufeff")
	if !bytes.HasPrefix(trimmed, frontmatterDelim) {
		return nil, data, nil
	}

	rest := trimmed[len(frontmatterDelim):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if len(rest) > 0 && rest[0] != '\n' {
		// "---" was the start of a thematic break, not a frontmatter fence.
		return nil, data, nil
	}
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	if bytes.HasPrefix(rest, frontmatterDelim) {
		// Closing fence on the very next line: empty frontmatter.
		body = rest[len(frontmatterDelim):]
	} else {
		end := bytes.Index(rest, append([]byte("\n"), frontmatterDelim...))
		if end < 0 {
			return nil, nil, fmt.Errorf("unterminated frontmatter block")
		}
		meta = rest[:end]
		body = rest[end+1+len(frontmatterDelim):]
	}

	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return meta, body, nil
}

// decodeEntry parses a raw entry file into an Entry. When resolveBody is
// false the markup body is discarded, matching listing fetch semantics.
func decodeEntry(slug string, data []byte, resolveBody bool) (*Entry, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", slug, err)
	}

	fields := map[string]any{}
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fields); err != nil {
			return nil, fmt.Errorf("entry %s: decode frontmatter: %w", slug, err)
		}
	}

	entry := &Entry{
		Slug:   slug,
		Fields: fields,
	}
	if resolveBody {
		entry.Body = body
	}
	return entry, nil
}
