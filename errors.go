package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown   = errors.New("markdown content cannot be empty")
	ErrMissingBaseName = errors.New("output base name cannot be empty")
	ErrDiagramRender   = errors.New("diagram rendering failed")
	ErrDocxConversion  = errors.New("DOCX conversion failed")

	// External tool discovery errors.
	ErrMermaidNotFound = errors.New("mermaid CLI (mmdc) not found")
	ErrPandocNotFound  = errors.New("pandoc not found")

	// Render settings validation errors.
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrInvalidDimension   = errors.New("invalid image dimension")
	ErrInvalidScale       = errors.New("invalid render scale")
	ErrInvalidBackground  = errors.New("invalid background color")
	ErrInvalidTheme       = errors.New("invalid mermaid theme")
)
