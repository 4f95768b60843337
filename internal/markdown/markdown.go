// Package markdown provides goldmark-based analysis of document bodies:
// link, heading, and shortcode extraction. It never renders anything.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a markdown body (front matter already removed) into a
// goldmark AST.
func ParseBody(body []byte) (gmast.Node, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))
	return root, nil
}

// ExtractLinks parses a markdown body and extracts link-like constructs.
func ExtractLinks(body []byte) ([]Link, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	return links, nil
}

// ExtractHeadings parses a markdown body and returns its headings with the
// anchor identifiers the site generator derives from them.
func ExtractHeadings(body []byte) ([]Heading, error) {
	root, err := ParseBody(body)
	if err != nil {
		return nil, err
	}

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		var title []byte
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*gmast.Text); ok {
				title = append(title, t.Segment.Value(body)...)
			}
		}
		headings = append(headings, Heading{
			Level:  h.Level,
			Text:   string(title),
			Anchor: AnchorID(string(title)),
		})
		return gmast.WalkSkipChildren, nil
	})
	return headings, nil
}
