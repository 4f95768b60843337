package taxonomy

import (
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

func buildFixture(t *testing.T) *Index {
	t.Helper()
	root := t.TempDir()
	write(t, root, "post/a.md", "---\ntitle: A\ntags: [R, mixed-models]\ncategories: [Statistics]\n---\nx\n")
	write(t, root, "post/b.md", "---\ntitle: B\ntags: [r, Bayesian]\ncategories: [statistics]\n---\nx\n")
	write(t, root, "project/c.md", "---\ntitle: C\ntags: mixed-models\n---\nx\n")

	site, err := content.Scan(root)
	require.NoError(t, err)
	return Build(site)
}

func TestBuild_AggregatesTerms(t *testing.T) {
	idx := buildFixture(t)

	term, ok := idx.Lookup(Tags, "mixed-models")
	require.True(t, ok)
	require.Len(t, term.Documents, 2)

	// "R" and "r" collapse to one term.
	term, ok = idx.Lookup(Tags, "R")
	require.True(t, ok)
	require.Len(t, term.Documents, 2)

	require.Len(t, idx.Terms(Tags), 3)
	require.Len(t, idx.Terms(Categories), 1)
}

func TestTerms_CollationOrder(t *testing.T) {
	idx := buildFixture(t)

	var names []string
	for _, term := range idx.Terms(Tags) {
		names = append(names, term.Slug)
	}
	require.Equal(t, []string{"bayesian", "mixed-models", "r"}, names)
}

func TestMixedCaseVariants(t *testing.T) {
	idx := buildFixture(t)

	variants := idx.MixedCaseVariants(Tags)
	require.Len(t, variants, 1)
	require.Equal(t, []string{"R", "r"}, variants["r"])

	variants = idx.MixedCaseVariants(Categories)
	require.Equal(t, []string{"Statistics", "statistics"}, variants["statistics"])
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Mixed Models":    "mixed-models",
		"R":               "r",
		"Émilie's Topic":  "emilies-topic",
		"stats/methods":   "stats-methods",
		"  spaced  out  ": "spaced-out",
		"already-sluged":  "already-sluged",
	}
	for in, want := range cases {
		require.Equal(t, want, Slug(in), in)
	}
}
