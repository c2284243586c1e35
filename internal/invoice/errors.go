package invoice

import "errors"

var (
	// ErrUnsupportedDocument indicates a document type text cannot be read from.
	ErrUnsupportedDocument = errors.New("unsupported document")

	// ErrEmptyDocument indicates a document with no content.
	ErrEmptyDocument = errors.New("empty document")

	// ErrMissingField indicates the model reply lacks a required field.
	ErrMissingField = errors.New("missing field in extraction reply")

	// ErrInvalidField indicates a field value that cannot be parsed.
	ErrInvalidField = errors.New("invalid field in extraction reply")

	// ErrMissingAPIKey indicates the LLM client was built without credentials.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")
)
