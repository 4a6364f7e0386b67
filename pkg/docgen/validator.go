package docgen

import (
	"archive/zip"
	"bytes"
	"fmt"
)

type ValidationResult struct {
	Valid  bool
	Issues []string
}

// Validator rejects payloads that cannot be a Word document before any merge is attempted.
type Validator struct {
	minSize int
}

func NewValidator(minSize int) *Validator {
	return &Validator{minSize: minSize}
}

func (v *Validator) Validate(content []byte) ValidationResult {
	if len(content) < v.minSize {
		return ValidationResult{Issues: []string{
			fmt.Sprintf("Ukuran template terlalu kecil (%d byte, minimal %d byte)", len(content), v.minSize),
		}}
	}
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ValidationResult{Issues: []string{"Template bukan dokumen .docx yang valid"}}
	}
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			return ValidationResult{Valid: true}
		}
	}
	return ValidationResult{Issues: []string{"Template tidak memiliki isi dokumen (word/document.xml)"}}
}
