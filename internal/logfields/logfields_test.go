package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{ String() string }
	}{
		{"Path", KeyPath, "content/post/x.md", Path("content/post/x.md")},
		{"Document", KeyDocument, "post/deep-learning", Document("post/deep-learning")},
		{"Kind", KeyKind, "profile", Kind("profile")},
		{"Section", KeySection, "project", Section("project")},
		{"Rule", KeyRule, "authors-resolve", Rule("authors-resolve")},
		{"Author", KeyAuthor, "admin", Author("admin")},
		{"Term", KeyTerm, "bayesian", Term("bayesian")},
		{"ReportID", KeyReportID, "r1", ReportID("r1")},
		{"Event", KeyEvent, "write", Event("write")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.attrKey+"="+tc.attrVal, tc.attr.String())
		})
	}
}

func TestErrorAttr(t *testing.T) {
	require.Equal(t, "error=boom", Error(errors.New("boom")).String())
	require.Equal(t, "error=", Error(nil).String())
}
