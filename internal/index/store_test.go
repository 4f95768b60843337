package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/contentkit/internal/content"
)

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func fixtureSite(t *testing.T) (*content.Site, string) {
	t.Helper()
	root := t.TempDir()
	write(t, root, "authors/jane/_index.md", "---\ntitle: Jane Doe\nrole: Lecturer\n---\nBio.\n")
	write(t, root, "post/a.md", "---\ntitle: A\nauthors: [jane]\ndate: 2019-01-02\ntags: [R, lme4]\n---\nx\n")
	write(t, root, "post/b.md", "---\ntitle: B\nauthors: [jane]\ndate: 2020-06-15\ntags: [r]\ncategories: [news]\ndraft: true\n---\nx\n")
	write(t, root, "project/p/index.md", "---\ntitle: P\ntags: [lme4]\n---\nx\n")

	site, err := content.Scan(root)
	require.NoError(t, err)
	return site, root
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRebuildAndQuery(t *testing.T) {
	site, _ := fixtureSite(t)
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Rebuild(ctx, site))

	all, err := store.Documents(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	posts, err := store.Documents(ctx, Query{Kind: "post"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "post/a.md", posts[0].RelPath)
	require.False(t, posts[0].Draft)
	require.True(t, posts[1].Draft)

	byAuthor, err := store.Documents(ctx, Query{Author: "jane"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)

	// Tag matching is slug-based: "R" and "r" are the same term.
	tagged, err := store.Documents(ctx, Query{Tag: "R"})
	require.NoError(t, err)
	require.Len(t, tagged, 2)

	since, err := store.Documents(ctx, Query{Since: "2020-01-01"})
	require.NoError(t, err)
	require.Len(t, since, 1)
	require.Equal(t, "post/b.md", since[0].RelPath)
}

func TestRebuild_IsIdempotentReplacement(t *testing.T) {
	site, root := fixtureSite(t)
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Rebuild(ctx, site))
	h1, err := store.SiteHash(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, h1)

	// Rebuilding from an edited tree replaces rows and updates the hash.
	write(t, root, "post/a.md", "---\ntitle: A edited\ndate: 2019-01-02\n---\nx\n")
	site2, err := content.Scan(root)
	require.NoError(t, err)
	require.NoError(t, store.Rebuild(ctx, site2))

	h2, err := store.SiteHash(ctx)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	rows, err := store.Documents(ctx, Query{Section: "post"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The edited post no longer references jane.
	byAuthor, err := store.Documents(ctx, Query{Author: "jane"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
}

func TestSiteHash_EmptyBeforeBuild(t *testing.T) {
	store := openStore(t)
	h, err := store.SiteHash(context.Background())
	require.NoError(t, err)
	require.Empty(t, h)
}

func TestTermsAndStats(t *testing.T) {
	site, _ := fixtureSite(t)
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Rebuild(ctx, site))

	terms, err := store.Terms(ctx, "tags")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	// lme4 and r both have two documents; ties order by slug.
	require.Equal(t, "lme4", terms[0].Slug)
	require.Equal(t, 2, terms[0].Count)
	require.Equal(t, "r", terms[1].Slug)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Documents)
	require.Equal(t, 2, stats.ByKind["post"])
	require.Equal(t, 1, stats.ByKind["profile"])
	require.Equal(t, 1, stats.ByKind["project"])
}
