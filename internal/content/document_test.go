package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const profileDoc = `---
title: Jane Doe
role: Senior Lecturer in Statistics
superuser: true
organizations:
  - name: Example University
    url: https://example.edu
social:
  - icon: envelope
    icon_pack: fas
    link: mailto:jane@example.edu
education:
  courses:
    - course: PhD in Statistics
      institution: Example University
      year: 2010
---
Jane works on mixed models and reproducible research.
`

func TestLoad_ProfileDocument(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "authors/jane/_index.md", profileDoc)

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.NoError(t, doc.MetaErr)

	require.Equal(t, KindProfile, doc.Kind)
	require.Equal(t, "jane", doc.AuthorID())
	require.Equal(t, "authors", doc.Section)
	require.Equal(t, "Jane Doe", doc.Fields.Title)
	require.Equal(t, "Senior Lecturer in Statistics", doc.Fields.Role)
	require.NotNil(t, doc.Fields.Superuser)
	require.True(t, *doc.Fields.Superuser)
	require.Len(t, doc.Fields.Organizations, 1)
	require.Equal(t, "https://example.edu", doc.Fields.Organizations[0].URL)
	require.Len(t, doc.Fields.Social, 1)
	require.Equal(t, "fas", doc.Fields.Social[0].IconPack)
	require.Len(t, doc.Fields.Education.Courses, 1)
	require.Equal(t, 2010, doc.Fields.Education.Courses[0].Year)
	require.Contains(t, string(doc.Body), "mixed models")
}

func TestLoad_PostWithScalarAuthor(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "post/lme4-pitfalls/index.md", `---
title: Common pitfalls with lme4
authors: jane
date: 2019-05-01
tags:
  - R
  - mixed-models
bibliography: refs.bib
---
Body text.
`)

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.Equal(t, KindPost, doc.Kind)
	require.Equal(t, []string{"jane"}, []string(doc.Fields.Authors))
	require.Equal(t, "2019-05-01", doc.Fields.Date)
	require.Equal(t, []string{"R", "mixed-models"}, []string(doc.Fields.Tags))
	require.Equal(t, "refs.bib", doc.Fields.Bibliography)
}

func TestLoad_MalformedFrontMatter_RecordedNotFatal(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "post/broken.md", "---\ntitle: Broken\nNo closing delimiter\n")

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.Error(t, doc.MetaErr)
}

func TestLoad_RenderedHTMLVariant(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "post/old-version.html", "<html><head><title>Old</title></head><body></body></html>")

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.True(t, doc.Rendered)
	require.Equal(t, KindPost, doc.Kind)
	require.False(t, doc.HasMeta)
}

func TestLoad_UnknownKeysLandInExtra(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "project/phd/index.md", `---
title: PhD position
type: opportunity
deadline: 2020-03-01
---
Apply now.
`)

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.Equal(t, KindProject, doc.Kind) // section wins over type
	require.Contains(t, doc.Fields.Extra, "deadline")
	require.NotContains(t, doc.Fields.Extra, "title")
}

func TestClassify_TypeFieldWhenSectionUnknown(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "misc/phd.md", "---\ntitle: PhD position\ntype: opportunity\n---\nApply.\n")

	doc, err := Load(root, path)
	require.NoError(t, err)
	require.Equal(t, KindOpportunity, doc.Kind)
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, v := range []string{"2019-05-01", "2019-05-01T10:30:00", "2019-05-01T10:30:00+02:00"} {
		_, err := ParseDate(v)
		require.NoError(t, err, v)
	}
	_, err := ParseDate("01/05/2019")
	require.Error(t, err)
}
