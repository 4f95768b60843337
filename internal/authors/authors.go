// Package authors resolves the author identifiers that documents reference
// in their front matter to the author profile documents that define them.
package authors

import (
	"sort"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/content"
)

// Registry holds the author profiles of a scanned site.
type Registry struct {
	profiles map[string]*content.Document
}

// NewRegistry builds a registry from the site's profile documents.
func NewRegistry(site *content.Site) *Registry {
	return &Registry{profiles: site.Profiles()}
}

// Resolve returns the profile document for an author identifier.
func (r *Registry) Resolve(id string) (*content.Document, error) {
	doc, ok := r.profiles[id]
	if !ok {
		return nil, cerrors.AuthorNotFound(id)
	}
	return doc, nil
}

// Exists reports whether an identifier resolves.
func (r *Registry) Exists(id string) bool {
	_, ok := r.profiles[id]
	return ok
}

// IDs returns all known author identifiers, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Superusers returns the identifiers of profiles with superuser: true.
// The site owner should be exactly one of these.
func (r *Registry) Superusers() []string {
	var out []string
	for id, doc := range r.profiles {
		if doc.Fields.Superuser != nil && *doc.Fields.Superuser {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DocumentsBy returns the non-profile documents that reference an author.
func DocumentsBy(site *content.Site, id string) []*content.Document {
	var out []*content.Document
	for _, d := range site.Documents {
		if d.Kind == content.KindProfile {
			continue
		}
		for _, a := range d.Fields.Authors {
			if a == id {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Unresolved returns, per document, the referenced identifiers that do not
// resolve to a profile. Documents with no unresolved references are omitted.
func Unresolved(site *content.Site, reg *Registry) map[*content.Document][]string {
	out := make(map[*content.Document][]string)
	for _, d := range site.Documents {
		if d.Kind == content.KindProfile {
			continue
		}
		for _, a := range d.Fields.Authors {
			if !reg.Exists(a) {
				out[d] = append(out[d], a)
			}
		}
	}
	return out
}
