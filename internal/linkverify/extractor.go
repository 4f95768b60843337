// Package linkverify checks that the references documents make to each
// other — relative links, fragments, images, bibliography files — actually
// resolve inside the content tree. External links are recorded, never
// fetched; this is an offline tool.
package linkverify

import (
	"strings"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/htmldoc"
	"git.home.luguber.info/inful/contentkit/internal/markdown"
)

// Reference is one outgoing reference of a document.
type Reference struct {
	Source      *content.Document
	Destination string
	Fragment    string
	Kind        RefKind
}

type RefKind string

const (
	RefKindLink          RefKind = "link"
	RefKindImage         RefKind = "image"
	RefKindExternal      RefKind = "external"
	RefKindBibliography  RefKind = "bibliography"
	RefKindSelfFragment  RefKind = "self_fragment"
)

// Extract pulls every outgoing reference out of a document, markup or
// rendered HTML alike.
func Extract(doc *content.Document) ([]Reference, error) {
	var refs []Reference

	add := func(dest string, image bool) {
		ref := classifyRef(doc, dest, image)
		if ref != nil {
			refs = append(refs, *ref)
		}
	}

	if doc.Rendered {
		info, err := htmldoc.Parse(doc.Raw)
		if err != nil {
			return nil, err
		}
		for _, l := range info.Links {
			add(l, false)
		}
		for _, img := range info.Images {
			add(img, true)
		}
	} else {
		links, err := markdown.ExtractLinks(doc.Body)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			add(l.Destination, l.Kind == markdown.LinkKindImage)
		}
	}

	if bib := doc.Fields.Bibliography; bib != "" {
		refs = append(refs, Reference{Source: doc, Destination: bib, Kind: RefKindBibliography})
	}
	return refs, nil
}

func classifyRef(doc *content.Document, dest string, image bool) *Reference {
	if dest == "" {
		return nil
	}
	if isExternal(dest) {
		return &Reference{Source: doc, Destination: dest, Kind: RefKindExternal}
	}

	path, frag := splitFragment(dest)
	if path == "" {
		return &Reference{Source: doc, Fragment: frag, Kind: RefKindSelfFragment}
	}

	kind := RefKindLink
	if image {
		kind = RefKindImage
	}
	return &Reference{Source: doc, Destination: path, Fragment: frag, Kind: kind}
}

func isExternal(dest string) bool {
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "ftp://", "//"} {
		if strings.HasPrefix(dest, prefix) {
			return true
		}
	}
	return false
}

func splitFragment(dest string) (path, frag string) {
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		return dest[:i], dest[i+1:]
	}
	return dest, ""
}
