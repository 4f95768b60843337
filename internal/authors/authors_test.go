package authors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/content"
)

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func scanFixture(t *testing.T) *content.Site {
	t.Helper()
	root := t.TempDir()
	write(t, root, "authors/jane/_index.md", "---\ntitle: Jane Doe\nrole: Lecturer\nsuperuser: true\n---\nBio.\n")
	write(t, root, "authors/sam/_index.md", "---\ntitle: Sam Roe\nrole: PhD student\n---\nBio.\n")
	write(t, root, "post/a.md", "---\ntitle: A\nauthors: [jane, sam]\n---\nx\n")
	write(t, root, "post/b.md", "---\ntitle: B\nauthors: [jane, ghost]\n---\nx\n")

	site, err := content.Scan(root)
	require.NoError(t, err)
	return site
}

func TestRegistry_Resolve(t *testing.T) {
	site := scanFixture(t)
	reg := NewRegistry(site)

	doc, err := reg.Resolve("jane")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", doc.Fields.Title)

	_, err = reg.Resolve("ghost")
	require.Error(t, err)
	var ce *cerrors.ContentError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, cerrors.CategoryValidation, ce.Category)

	require.Equal(t, []string{"jane", "sam"}, reg.IDs())
	require.Equal(t, []string{"jane"}, reg.Superusers())
}

func TestDocumentsBy(t *testing.T) {
	site := scanFixture(t)

	docs := DocumentsBy(site, "jane")
	require.Len(t, docs, 2)

	docs = DocumentsBy(site, "sam")
	require.Len(t, docs, 1)
	require.Equal(t, "A", docs[0].Fields.Title)
}

func TestUnresolved(t *testing.T) {
	site := scanFixture(t)
	reg := NewRegistry(site)

	unresolved := Unresolved(site, reg)
	require.Len(t, unresolved, 1)
	for doc, ids := range unresolved {
		require.Equal(t, "B", doc.Fields.Title)
		require.Equal(t, []string{"ghost"}, ids)
	}
}
