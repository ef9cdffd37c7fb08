package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for the template package.
var (
	// ErrTemplateRead indicates a template source could not be read.
	ErrTemplateRead = errors.New("template: read failed")

	// ErrRender indicates a template failed to parse or execute, including
	// references to undefined context fields.
	ErrRender = errors.New("template: render failed")

	// ErrTemplateWrite indicates a rendered or copied file could not be written.
	ErrTemplateWrite = errors.New("template: write failed")

	// ErrDestinationFileExists indicates a destination file is already present.
	ErrDestinationFileExists = errors.New("template: destination file already exists")

	// ErrUnexpandedToken indicates template markup survived rendering.
	ErrUnexpandedToken = errors.New("template: unexpanded token in output")

	// ErrPathTraversal indicates a destination escapes the project root.
	ErrPathTraversal = errors.New("template: path traversal detected")

	// ErrInvalidManifest indicates a manifest entry failed validation.
	ErrInvalidManifest = errors.New("template: invalid manifest")
)

// TemplateReadError reports a template source that could not be read.
type TemplateReadError struct {
	Source string
	Err    error
}

func (e *TemplateReadError) Error() string {
	return fmt.Sprintf("read template %q: %v", e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TemplateReadError) Unwrap() []error { return []error{ErrTemplateRead, e.Err} }

// RenderError reports a template that failed to parse or execute.
type RenderError struct {
	Source string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render template %q: %v", e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

// TemplateWriteError reports a destination path that could not be created.
type TemplateWriteError struct {
	Path string
	Err  error
}

func (e *TemplateWriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TemplateWriteError) Unwrap() []error { return []error{ErrTemplateWrite, e.Err} }
