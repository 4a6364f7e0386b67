package docx

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	DuplicateOpenTag  ErrorKind = "duplicate_open_tag"
	DuplicateCloseTag ErrorKind = "duplicate_close_tag"
	UnclosedTag       ErrorKind = "unclosed_tag"
	UnopenedTag       ErrorKind = "unopened_tag"
	EmptyTag          ErrorKind = "empty_tag"
	UnclosedLoop      ErrorKind = "unclosed_loop"
	UnopenedLoop      ErrorKind = "unopened_loop"
	LoopMismatch      ErrorKind = "closing_tag_mismatch"
)

// TagError describes one malformed placeholder found while lexing a document part.
type TagError struct {
	Kind ErrorKind
	// Tag is the placeholder name as far as it could be recovered.
	Tag     string
	Part    string
	Context string
}

func (e TagError) String() string {
	return fmt.Sprintf("%s %q in %s near %q", e.Kind, e.Tag, e.Part, e.Context)
}

// TemplateError collects every tag problem of a template. Merge returns it instead of stopping at the first one.
type TemplateError struct {
	Errors []TagError
}

func (e *TemplateError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, te := range e.Errors {
		parts = append(parts, te.String())
	}
	return fmt.Sprintf("template has %d tag error(s): %s", len(e.Errors), strings.Join(parts, "; "))
}
