package documents

import "errors"

var (
	ErrEmptyFilename    = errors.New("filename cannot be empty")
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileMissing      = errors.New("file not found on disk")
)
