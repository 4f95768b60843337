// Package frontmatter splits, parses, and reassembles the `---` delimited
// YAML metadata block that prefixes every content document.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline/trailing newline shape and does not
// attempt to preserve original YAML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates YAML front matter (`---` delimited) from the markup body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (meta []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	rest := content[len(open):]

	// An immediately closing delimiter means an empty metadata block.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF counts even without a final newline.
		if bytes.Equal(rest, []byte("---")) {
			return []byte{}, nil, true, style, nil
		}
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-3], nil, true, style, nil
		}
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	meta = rest[:idx+len(nl)]
	body = rest[idx+len(closeSeq):]
	return meta, body, true, style, nil
}

// Join reassembles a document from raw front matter and body.
//
// If had is false, Join returns body as-is. Otherwise it emits the metadata
// block with `---` delimiters using the newline style captured in Style.
func Join(meta []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	delim := []byte("---" + nl)
	out := make([]byte, 0, 2*len(delim)+len(meta)+len(body))
	out = append(out, delim...)
	out = append(out, meta...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// Parse parses raw YAML front matter (without --- delimiters) into a map.
//
// Unlike yaml.v3's map decoding, Parse tolerates duplicate keys (the later
// definition wins, matching what site generators do); FindDuplicateKeys is
// the place that reports them.
func Parse(meta []byte) (map[string]any, error) {
	if len(meta) == 0 {
		return map[string]any{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(meta, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("front matter is not a key-value mapping")
	}

	fields, err := mapFromNode(root)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func mapFromNode(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := valueFromNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out[n.Content[i].Value] = v
	}
	return out, nil
}

func valueFromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return mapFromNode(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		// Keep timestamps as their raw scalar text; date handling and
		// validation work on the authored form, not a parsed time.Time.
		if n.Tag == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
