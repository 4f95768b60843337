// Package htmldoc analyzes the pre-rendered HTML variants that sit alongside
// markup documents in the content tree. They are read-only inputs: we extract
// enough structure (title, description, links, anchors) for validation, and
// never rewrite them.
package htmldoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Info is the extracted structure of a rendered HTML document.
type Info struct {
	Title       string
	Description string
	Links       []string // href values of <a> elements
	Images      []string // src values of <img> elements
	Anchors     []string // id attributes usable as # fragments
}

// Parse extracts Info from rendered HTML.
func Parse(raw []byte) (*Info, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	info := &Info{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if info.Title == "" {
					info.Title = strings.TrimSpace(textContent(n))
				}
			case "meta":
				if attr(n, "name") == "description" {
					info.Description = attr(n, "content")
				}
			case "a":
				if href := attr(n, "href"); href != "" {
					info.Links = append(info.Links, href)
				}
			case "img":
				if src := attr(n, "src"); src != "" {
					info.Images = append(info.Images, src)
				}
			}
			if id := attr(n, "id"); id != "" {
				info.Anchors = append(info.Anchors, id)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return info, nil
}

// HasAnchor reports whether the document defines the given fragment id.
func (i *Info) HasAnchor(id string) bool {
	for _, a := range i.Anchors {
		if a == id {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
