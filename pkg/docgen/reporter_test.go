package docgen

import (
	"errors"
	"testing"

	"github.com/bps3210/simkak/pkg/docx"
	"github.com/stretchr/testify/assert"
)

func TestReporter_Report(t *testing.T) {
	reporter := NewReporter()

	t.Run("should group tag errors by category", func(t *testing.T) {
		// given
		err := &docx.TemplateError{Errors: []docx.TagError{
			{Kind: docx.UnclosedTag, Tag: "jenisKAK", Part: "word/document.xml"},
			{Kind: docx.UnclosedLoop, Tag: "items", Part: "word/document.xml"},
			{Kind: docx.UnopenedTag, Tag: "kegiatan", Part: "word/document.xml"},
			{Kind: docx.DuplicateOpenTag, Tag: "total", Part: "word/document.xml"},
			{Kind: docx.DuplicateCloseTag, Tag: "total", Part: "word/header1.xml"},
			{Kind: docx.EmptyTag, Part: "word/document.xml", Context: "{}"},
		}}

		// when
		d := reporter.Report(err, docx.DefaultDelimiters)

		// then
		assert.Equal(t, []string{"jenisKAK", "items"}, d.Unclosed)
		assert.Equal(t, []string{"kegiatan"}, d.Unopened)
		assert.Equal(t, []string{"total"}, d.Duplicate)
		assert.Len(t, d.Other, 1)
		assert.Contains(t, d.Summary, "jenisKAK, items")
		assert.Contains(t, d.Summary, "kegiatan")
		assert.Contains(t, d.Hint, "{#items}")
		assert.Equal(t, []string{"jenisKAK", "items", "kegiatan", "total"}, d.Tags())
		assert.Empty(t, d.Raw)
	})

	t.Run("should spell the hint with the profile delimiters", func(t *testing.T) {
		// given
		err := &docx.TemplateError{Errors: []docx.TagError{{Kind: docx.UnclosedTag, Tag: "jenis_kak"}}}

		// when
		d := reporter.Report(err, SnakeV1.Delimiters)

		// then
		assert.Contains(t, d.Hint, "{{/items}}")
	})

	t.Run("should pass other failures through", func(t *testing.T) {
		// when
		d := reporter.Report(errors.New("zip: not a valid zip file"), docx.DefaultDelimiters)

		// then
		assert.Equal(t, "zip: not a valid zip file", d.Raw)
		assert.Empty(t, d.Tags())
		assert.Empty(t, d.Hint)
	})
}
