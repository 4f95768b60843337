package content

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Fields is the typed view of the recognized front matter keys. Everything
// the site's theme understands beyond these stays in Extra; front matter is
// open-schema and the renderer may consume keys this tool does not model.
type Fields struct {
	Title         string     `yaml:"title"`
	Summary       string     `yaml:"summary"`
	Authors       StringList `yaml:"authors"`
	Date          string     `yaml:"date"`
	Lastmod       string     `yaml:"lastmod"`
	Tags          StringList `yaml:"tags"`
	Categories    StringList `yaml:"categories"`
	Bibliography  string     `yaml:"bibliography"`
	Email         string     `yaml:"email"`
	Role          string     `yaml:"role"`
	Type          string     `yaml:"type"`
	Superuser     *bool      `yaml:"superuser"`
	HighlightName *bool      `yaml:"highlight_name"`
	Share         *bool      `yaml:"share"`
	Profile       *bool      `yaml:"profile"`
	Draft         bool       `yaml:"draft"`
	Featured      bool       `yaml:"featured"`
	Organizations []Organization `yaml:"organizations"`
	Social        []SocialLink   `yaml:"social"`
	Education     Education      `yaml:"education"`
	Image         *Image         `yaml:"image"`

	// Extra holds unrecognized keys verbatim.
	Extra map[string]any `yaml:"-"`
}

// Organization is an affiliation on an author profile.
type Organization struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SocialLink is one social/contact entry on an author profile.
type SocialLink struct {
	Icon     string `yaml:"icon"`
	IconPack string `yaml:"icon_pack"`
	Link     string `yaml:"link"`
}

// Education lists the degrees on an author profile.
type Education struct {
	Courses []Course `yaml:"courses"`
}

// Course is one degree entry.
type Course struct {
	Course      string `yaml:"course"`
	Institution string `yaml:"institution"`
	Year        int    `yaml:"year"`
}

// Image is the page image block on posts and project pages.
type Image struct {
	Caption     string `yaml:"caption"`
	PreviewOnly bool   `yaml:"preview_only"`
	FocalPoint  string `yaml:"focal_point"`
}

// StringList decodes either a YAML sequence of strings or a bare scalar.
// Themes accept `authors: admin` and `authors: [admin, jane]` alike.
type StringList []string

func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" || node.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = StringList{node.Value}
		return nil
	default:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*s = items
		return nil
	}
}

// recognizedKeys is the set of top-level keys Fields models; everything else
// goes to Extra.
var recognizedKeys = map[string]struct{}{
	"title": {}, "summary": {}, "authors": {}, "date": {}, "lastmod": {},
	"tags": {}, "categories": {}, "bibliography": {}, "email": {}, "role": {},
	"type": {}, "superuser": {}, "highlight_name": {}, "share": {},
	"profile": {}, "draft": {}, "featured": {}, "organizations": {},
	"social": {}, "education": {}, "image": {},
}

// DecodeFields produces the typed view from the raw metadata block. Decode
// failures of individual fields are tolerated: a scalar where a list is
// expected still surfaces through the Meta map and the lint rules.
func DecodeFields(meta []byte, raw map[string]any) Fields {
	var f Fields
	_ = yaml.Unmarshal(meta, &f)

	for k, v := range raw {
		if _, ok := recognizedKeys[k]; ok {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[k] = v
	}
	return f
}

// DateLayouts are the timestamp forms accepted in `date` and `lastmod`,
// matching what the site generator tolerates.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a front matter timestamp.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
