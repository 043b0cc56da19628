package errors

// Convenience constructors for the pipeline's recurring failure shapes.

// Config errors

func ConfigNotFound(path string) *PagemillError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(reason string, cause error) *PagemillError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("reason", reason)
}

// Per-document errors. These are recoverable at the document level: the
// pipeline records them and continues with the remaining documents.

func MetadataMalformed(path string, cause error) *PagemillError {
	return Wrap(cause, CategoryMetadata, SeverityWarning, "metadata header malformed, using empty metadata").
		WithContext("path", path)
}

func SourceUnreadable(path string, cause error) *PagemillError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "source file unreadable").
		WithContext("path", path)
}

func UnsafeContent(path, element string) *PagemillError {
	return New(CategoryRender, SeverityError, "rendered content contains unsafe element").
		WithContext("path", path).
		WithContext("element", element)
}

func ContentParseFailed(path string, cause error) *PagemillError {
	return Wrap(cause, CategoryContent, SeverityError, "content parse failed").
		WithContext("path", path)
}

// Run-level errors

func NoDocumentsProduced(inputDir string) *PagemillError {
	return New(CategoryContent, SeverityFatal, "generation produced zero documents").
		WithContext("input_dir", inputDir)
}

func SourceFetchFailed(url string, cause error) *PagemillError {
	return Wrap(cause, CategorySource, SeverityFatal, "remote content fetch failed").
		WithContext("url", url)
}
