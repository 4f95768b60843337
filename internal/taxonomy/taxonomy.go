// Package taxonomy aggregates the tags and categories declared across a
// site's front matter into per-term document lists.
package taxonomy

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/contentkit/internal/content"
)

// Dimension names the two taxonomies the site declares.
type Dimension string

const (
	Tags       Dimension = "tags"
	Categories Dimension = "categories"
)

// Term is one taxonomy value with the documents that declare it.
type Term struct {
	Name      string
	Slug      string
	Documents []*content.Document
}

// Index holds both taxonomies of a scanned site.
type Index struct {
	terms map[Dimension]map[string]*Term
	coll  *collate.Collator
}

// Build aggregates taxonomy terms from every document of the site.
func Build(site *content.Site) *Index {
	idx := &Index{
		terms: map[Dimension]map[string]*Term{
			Tags:       {},
			Categories: {},
		},
		coll: collate.New(language.Und, collate.Loose),
	}

	for _, doc := range site.Documents {
		idx.addAll(Tags, doc.Fields.Tags, doc)
		idx.addAll(Categories, doc.Fields.Categories, doc)
	}
	return idx
}

func (i *Index) addAll(dim Dimension, values []string, doc *content.Document) {
	for _, v := range values {
		if v == "" {
			continue
		}
		slug := Slug(v)
		term, ok := i.terms[dim][slug]
		if !ok {
			term = &Term{Name: v, Slug: slug}
			i.terms[dim][slug] = term
		}
		term.Documents = append(term.Documents, doc)
	}
}

// Terms returns one taxonomy's terms in collation order.
func (i *Index) Terms(dim Dimension) []*Term {
	out := make([]*Term, 0, len(i.terms[dim]))
	for _, t := range i.terms[dim] {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool {
		return i.coll.CompareString(out[a].Name, out[b].Name) < 0
	})
	return out
}

// Lookup finds a term by name or slug.
func (i *Index) Lookup(dim Dimension, name string) (*Term, bool) {
	t, ok := i.terms[dim][Slug(name)]
	return t, ok
}

// MixedCaseVariants returns groups of distinct spellings that collapse to
// the same slug, e.g. "R" vs "r". The lowercase-terms fixer uses this.
func (i *Index) MixedCaseVariants(dim Dimension) map[string][]string {
	variants := make(map[string]map[string]struct{})
	for _, t := range i.terms[dim] {
		for _, doc := range t.Documents {
			values := doc.Fields.Tags
			if dim == Categories {
				values = doc.Fields.Categories
			}
			for _, v := range values {
				if Slug(v) != t.Slug {
					continue
				}
				if variants[t.Slug] == nil {
					variants[t.Slug] = make(map[string]struct{})
				}
				variants[t.Slug][v] = struct{}{}
			}
		}
	}

	out := make(map[string][]string)
	for slug, set := range variants {
		if len(set) < 2 {
			continue
		}
		var names []string
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[slug] = names
	}
	return out
}
