package cerrors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ContentError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *ContentError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func ContentRootMissing(path string) *ContentError {
	return New(CategoryContent, SeverityFatal, "content root does not exist").
		WithContext("path", path)
}

func DocumentLoadError(path string, cause error) *ContentError {
	return Wrap(cause, CategoryContent, SeverityError, "failed to load document").
		WithContext("path", path)
}

func FrontMatterError(path string, cause error) *ContentError {
	return Wrap(cause, CategoryFrontMatter, SeverityError, "malformed front matter").
		WithContext("path", path)
}

func AuthorNotFound(id string) *ContentError {
	return New(CategoryValidation, SeverityError, "author identifier does not resolve").
		WithContext("author", id)
}

// Index errors

func IndexOpenError(path string, cause error) *ContentError {
	return Wrap(cause, CategoryIndex, SeverityFatal, "failed to open content index").
		WithContext("path", path)
}

func IndexQueryError(cause error) *ContentError {
	return Wrap(cause, CategoryIndex, SeverityError, "index query failed")
}

// Git errors

func NotARepository(path string) *ContentError {
	return New(CategoryGit, SeverityError, "content tree is not inside a git repository").
		WithContext("path", path)
}

func HistoryError(path string, cause error) *ContentError {
	return Wrap(cause, CategoryGit, SeverityError, "failed to read document history").
		WithContext("path", path)
}

// Watch errors

func WatcherError(cause error) *ContentError {
	return Wrap(cause, CategoryWatch, SeverityFatal, "file watcher failed")
}
