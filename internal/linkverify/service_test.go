package linkverify

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

func TestVerify_CleanSite(t *testing.T) {
	root := t.TempDir()
	write(t, root, "post/a/index.md", `---
title: A
bibliography: refs.bib
---
# Intro

See [the other post](../b/) and [a section](#intro).
![plot](plot.png)
<https://example.org/>
`)
	write(t, root, "post/a/refs.bib", "@article{x}")
	write(t, root, "post/a/plot.png", "png")
	write(t, root, "post/b/index.md", "---\ntitle: B\n---\n# Intro\n")

	site, err := content.Scan(root)
	require.NoError(t, err)

	report, err := Verify(site)
	require.NoError(t, err)
	require.Empty(t, report.Broken)
	require.Equal(t, 1, report.External)
	require.Equal(t, 5, report.ReferencesChecked)
}

func TestVerify_BrokenLinkAndMissingBibliography(t *testing.T) {
	root := t.TempDir()
	write(t, root, "post/a.md", `---
title: A
bibliography: refs.bib
---
[gone](/post/missing/) and [bad fragment](#nope).
`)

	site, err := content.Scan(root)
	require.NoError(t, err)

	report, err := Verify(site)
	require.NoError(t, err)
	require.Len(t, report.Broken, 3)

	reasons := map[RefKind]string{}
	for _, f := range report.Broken {
		reasons[f.Kind] = f.Reason
	}
	require.Equal(t, "link target does not resolve", reasons[RefKindLink])
	require.Equal(t, "fragment not found in document", reasons[RefKindSelfFragment])
	require.Equal(t, "referenced file does not exist", reasons[RefKindBibliography])
}

func TestVerify_FragmentAgainstTargetHeadings(t *testing.T) {
	root := t.TempDir()
	write(t, root, "post/a.md", "---\ntitle: A\n---\n[ok](b.md#the-model) [bad](b.md#nope)\n")
	write(t, root, "post/b.md", "---\ntitle: B\n---\n# The Model\n")

	site, err := content.Scan(root)
	require.NoError(t, err)

	report, err := Verify(site)
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Equal(t, "fragment not found in link target", report.Broken[0].Reason)
}

func TestVerify_RenderedHTMLVariantParticipates(t *testing.T) {
	root := t.TempDir()
	write(t, root, "post/old.html", `<html><body>
<a href="/post/live/">live</a>
<a href="/post/gone/">gone</a>
</body></html>`)
	write(t, root, "post/live/index.md", "---\ntitle: Live\n---\nx\n")

	site, err := content.Scan(root)
	require.NoError(t, err)

	report, err := Verify(site)
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	require.Equal(t, "post/old.html", report.Broken[0].Source)
	require.Equal(t, "/post/gone/", report.Broken[0].Destination)
}
