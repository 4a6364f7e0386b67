// Package docx fills placeholders in WordprocessingML (.docx) templates.
//
// Placeholders are written between configurable delimiters, for example {nama}. A section
// {#items}...{/items} repeats its body once per element of a list and {^items}...{/items} renders
// only when the list is empty. A section spanning table cells repeats whole table rows.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var ErrNotDocx = errors.New("not a docx archive")

type Delimiters struct {
	Open  string
	Close string
}

var DefaultDelimiters = Delimiters{Open: "{", Close: "}"}

type Options struct {
	Delimiters Delimiters
	// LineBreaks renders "\n" in values as Word line breaks.
	LineBreaks bool
	// OnMissing is called for every placeholder without a value. The placeholder renders empty.
	OnMissing func(part, name string)
}

// Merge renders data into the template and returns the new document. Tag problems in any part
// are returned together as *TemplateError.
func Merge(template []byte, data map[string]any, opts Options) ([]byte, error) {
	if opts.Delimiters.Open == "" || opts.Delimiters.Close == "" {
		opts.Delimiters = DefaultDelimiters
	}
	archive, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	rendered := map[string]string{}
	var tagErrs []TagError
	for _, f := range archive.File {
		if !isTextPart(f.Name) {
			continue
		}
		xml, err := readFile(f)
		if err != nil {
			return nil, err
		}
		part, errs := parsePart(f.Name, xml, opts.Delimiters)
		if len(errs) > 0 {
			tagErrs = append(tagErrs, errs...)
			continue
		}
		if len(part.tags) == 0 {
			continue
		}
		r := renderer{opts: opts, part: f.Name}
		var b strings.Builder
		r.render(&b, buildTree(expandSections(part.segments)), []any{data})
		rendered[f.Name] = b.String()
	}
	if len(tagErrs) > 0 {
		return nil, &TemplateError{Errors: tagErrs}
	}

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	for _, f := range archive.File {
		content, ok := rendered[f.Name]
		if !ok {
			if err := w.Copy(f); err != nil {
				return nil, fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}
		fw, err := w.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return out.Bytes(), nil
}

// Inspect lexes every text part without rendering and reports the placeholder names it found.
func Inspect(template []byte, delims Delimiters) ([]string, error) {
	if delims.Open == "" || delims.Close == "" {
		delims = DefaultDelimiters
	}
	archive, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var names []string
	seen := map[string]bool{}
	var tagErrs []TagError
	for _, f := range archive.File {
		if !isTextPart(f.Name) {
			continue
		}
		xml, err := readFile(f)
		if err != nil {
			return nil, err
		}
		part, errs := parsePart(f.Name, xml, delims)
		tagErrs = append(tagErrs, errs...)
		for _, t := range part.tags {
			if t.kind != closeTag && !seen[t.name] {
				seen[t.name] = true
				names = append(names, t.name)
			}
		}
	}
	if len(tagErrs) > 0 {
		return names, &TemplateError{Errors: tagErrs}
	}
	return names, nil
}

func isTextPart(name string) bool {
	if path.Dir(name) != "word" || path.Ext(name) != ".xml" {
		return false
	}
	base := path.Base(name)
	return base == "document.xml" || base == "footnotes.xml" || base == "endnotes.xml" ||
		strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")
}

func readFile(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return string(content), nil
}
