package docgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bps3210/simkak/pkg/docx"
)

// Diagnostic explains why a template could not be rendered. It is advisory; nothing is repaired.
type Diagnostic struct {
	Summary   string   `json:"summary"`
	Unclosed  []string `json:"unclosed,omitempty"`
	Unopened  []string `json:"unopened,omitempty"`
	Duplicate []string `json:"duplicate,omitempty"`
	Other     []string `json:"other,omitempty"`
	Hint      string   `json:"hint,omitempty"`
	// Raw is the underlying error message for failures that are not tag problems.
	Raw string `json:"raw,omitempty"`
}

// Tags lists every tag name mentioned by the diagnostic.
func (d Diagnostic) Tags() []string {
	var tags []string
	for _, group := range [][]string{d.Unclosed, d.Unopened, d.Duplicate} {
		tags = append(tags, group...)
	}
	return tags
}

// Reporter groups merge failures by category.
type Reporter struct {
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Report(err error, delims docx.Delimiters) Diagnostic {
	var templateErr *docx.TemplateError
	if !errors.As(err, &templateErr) {
		return Diagnostic{Summary: "Gagal membuat dokumen", Raw: err.Error()}
	}

	d := Diagnostic{}
	for _, te := range templateErr.Errors {
		name := te.Tag
		if name == "" {
			name = te.Context
		}
		switch te.Kind {
		case docx.UnclosedTag, docx.UnclosedLoop, docx.LoopMismatch:
			d.Unclosed = appendUnique(d.Unclosed, name)
		case docx.UnopenedTag, docx.UnopenedLoop:
			d.Unopened = appendUnique(d.Unopened, name)
		case docx.DuplicateOpenTag, docx.DuplicateCloseTag:
			d.Duplicate = appendUnique(d.Duplicate, name)
		default:
			d.Other = append(d.Other, te.String())
		}
	}

	var parts []string
	if len(d.Unclosed) > 0 {
		parts = append(parts, fmt.Sprintf("tag dibuka tetapi tidak ditutup: %s", strings.Join(d.Unclosed, ", ")))
	}
	if len(d.Unopened) > 0 {
		parts = append(parts, fmt.Sprintf("tag ditutup tetapi tidak dibuka: %s", strings.Join(d.Unopened, ", ")))
	}
	if len(d.Duplicate) > 0 {
		parts = append(parts, fmt.Sprintf("penanda tag ganda: %s", strings.Join(d.Duplicate, ", ")))
	}
	if len(d.Other) > 0 {
		parts = append(parts, fmt.Sprintf("%d kesalahan tag lainnya", len(d.Other)))
	}
	d.Summary = "Template memiliki kesalahan tag: " + strings.Join(parts, "; ")
	d.Hint = fmt.Sprintf("Pastikan setiap placeholder ditulis persis seperti %snamaField%s tanpa format berbeda di tengah tag, "+
		"dan setiap %s#items%s ditutup dengan %s/items%s.",
		delims.Open, delims.Close, delims.Open, delims.Close, delims.Open, delims.Close)
	return d
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
