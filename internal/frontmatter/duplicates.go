package frontmatter

import (
	"gopkg.in/yaml.v3"
)

// DuplicateKey describes a key that appears more than once at the same
// mapping level of a front matter block.
type DuplicateKey struct {
	Key       string
	Line      int // line of the duplicate occurrence, relative to the metadata block
	FirstLine int // line of the first occurrence
}

// FindDuplicateKeys parses raw YAML front matter and reports keys that are
// defined more than once at the same mapping level, with their positions.
//
// yaml.v3's map decoding rejects duplicates outright; decoding into a Node
// keeps them, which is what lets us report positions instead of failing.
func FindDuplicateKeys(meta []byte) ([]DuplicateKey, error) {
	if len(meta) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(meta, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var dups []DuplicateKey
	walkMappings(doc.Content[0], &dups)
	return dups, nil
}

func walkMappings(n *yaml.Node, dups *[]DuplicateKey) {
	switch n.Kind {
	case yaml.MappingNode:
		seen := make(map[string]int) // key -> line of first occurrence
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			val := n.Content[i+1]
			if first, ok := seen[key.Value]; ok {
				*dups = append(*dups, DuplicateKey{
					Key:       key.Value,
					Line:      key.Line,
					FirstLine: first,
				})
			} else {
				seen[key.Value] = key.Line
			}
			walkMappings(val, dups)
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			walkMappings(c, dups)
		}
	}
}
