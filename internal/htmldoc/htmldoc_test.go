package htmldoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const renderedPost = `<!DOCTYPE html>
<html>
<head>
  <title>Common pitfalls with lme4 | Jane Doe</title>
  <meta name="description" content="Notes on mixed model convergence.">
</head>
<body>
  <h1 id="intro">Intro</h1>
  <p>See <a href="/post/other/">another post</a> and
  <a href="https://example.org/paper">the paper</a>.</p>
  <img src="/img/fit.png">
  <h2 id="random-effects">Random effects</h2>
</body>
</html>`

func TestParse_ExtractsStructure(t *testing.T) {
	info, err := Parse([]byte(renderedPost))
	require.NoError(t, err)

	require.Equal(t, "Common pitfalls with lme4 | Jane Doe", info.Title)
	require.Equal(t, "Notes on mixed model convergence.", info.Description)
	require.Equal(t, []string{"/post/other/", "https://example.org/paper"}, info.Links)
	require.Equal(t, []string{"/img/fit.png"}, info.Images)
	require.True(t, info.HasAnchor("intro"))
	require.True(t, info.HasAnchor("random-effects"))
	require.False(t, info.HasAnchor("missing"))
}

func TestParse_ToleratesFragments(t *testing.T) {
	// html.Parse builds a full document around fragments; extraction still works.
	info, err := Parse([]byte(`<p>loose <a href="x.html">link</a></p>`))
	require.NoError(t, err)
	require.Equal(t, []string{"x.html"}, info.Links)
	require.Empty(t, info.Title)
}
