package cerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentError_ErrorString(t *testing.T) {
	err := New(CategoryValidation, SeverityError, "date does not parse")
	require.Equal(t, "validation (error): date does not parse", err.Error())
}

func TestContentError_WrapsCause(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := Wrap(cause, CategoryFrontMatter, SeverityError, "malformed front matter")

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "malformed front matter")
	require.Contains(t, err.Error(), cause.Error())
}

func TestContentError_WithContext(t *testing.T) {
	err := AuthorNotFound("ghost")
	require.Equal(t, "ghost", err.Context["author"])

	var ce *ContentError
	require.True(t, errors.As(error(err), &ce))
	require.Equal(t, CategoryValidation, ce.Category)
}

func TestContentError_IsFatal(t *testing.T) {
	require.True(t, ConfigNotFound("missing.yaml").IsFatal())
	require.False(t, AuthorNotFound("ghost").IsFatal())
}
