package content

import "errors"

var (
	// ErrPostNotFound reports an unknown, missing, or unparseable post.
	// Callers must treat it as a normal outcome (render a not-found page),
	// not a fault; test with errors.Is.
	ErrPostNotFound = errors.New("content: post not found")

	// ErrSlugRequired reports an empty slug argument.
	ErrSlugRequired = errors.New("content: slug is required")

	// ErrFrontMatterInvalid reports front matter rejected by the strict
	// schema validator.
	ErrFrontMatterInvalid = errors.New("content: front matter failed schema validation")
)
