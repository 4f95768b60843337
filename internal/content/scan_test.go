package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seedSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "authors/jane/_index.md", "---\ntitle: Jane Doe\nrole: Lecturer\nsuperuser: true\n---\nBio.\n")
	writeFile(t, root, "post/first/index.md", "---\ntitle: First post\nauthors: [jane]\ndate: 2019-01-02\n---\nHello.\n")
	writeFile(t, root, "post/second.md", "---\ntitle: Second post\nauthors: jane\ndate: 2019-02-03\n---\nAgain.\n")
	writeFile(t, root, "project/website/index.md", "---\ntitle: Site project\n---\nAbout the site.\n")
	writeFile(t, root, ".git/ignored.md", "not content")
	writeFile(t, root, "post/figure.png", "binary-ish")
	return root
}

func TestScan_LoadsMarkupTree(t *testing.T) {
	root := seedSite(t)

	site, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, site.Documents, 4)
	require.NotEmpty(t, site.ScanID)

	require.Len(t, site.ByKind(KindPost), 2)
	require.Len(t, site.ByKind(KindProject), 1)

	profiles := site.Profiles()
	require.Contains(t, profiles, "jane")

	doc, ok := site.Lookup("post/second.md")
	require.True(t, ok)
	require.Equal(t, "Second post", doc.Fields.Title)

	require.Equal(t, []string{"authors", "post", "project"}, site.Sections())
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan("/nonexistent/content/root")
	require.Error(t, err)
}

func TestSiteHash_StableAndChangeSensitive(t *testing.T) {
	root := seedSite(t)

	site, err := Scan(root)
	require.NoError(t, err)
	h1 := SiteHash(site.Documents)
	h2 := SiteHash(site.Documents)
	require.Equal(t, h1, h2)

	writeFile(t, root, "post/second.md", "---\ntitle: Second post, edited\n---\nAgain.\n")
	site2, err := Scan(root)
	require.NoError(t, err)
	require.NotEqual(t, h1, SiteHash(site2.Documents))

	require.NotEmpty(t, SiteHash(nil))
}
