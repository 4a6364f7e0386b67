package docx

import (
	"strings"
	"unicode/utf8"
)

type tagKind int

const (
	valueTag tagKind = iota
	sectionTag
	invertedTag
	closeTag
)

type tag struct {
	kind tagKind
	name string
	// start and end are byte offsets of the delimited tag in the part's concatenated text
	start, end int
}

const contextWidth = 20

// lex finds delimited tags in text. Malformed delimiters are reported and lexing continues.
// breaks are ascending offsets where a paragraph ends; a tag cannot continue past one.
func lex(text string, delims Delimiters, part string, breaks []int) ([]tag, []TagError) {
	var tags []tag
	var errs []TagError

	open, closing := delims.Open, delims.Close
	inside := false
	tagStart := -1
	lastCloseEnd := -1
	lastBreak := 0
	lastName := ""

	unclosed := func(end int) TagError {
		return TagError{
			Kind:    UnclosedTag,
			Tag:     openName(text[tagStart+len(open) : end]),
			Part:    part,
			Context: snippet(text, tagStart, min(end, tagStart+len(open)+contextWidth)),
		}
	}

	for i := 0; i < len(text); {
		for len(breaks) > 0 && breaks[0] <= i {
			if inside {
				errs = append(errs, unclosed(breaks[0]))
				inside = false
			}
			lastBreak = breaks[0]
			breaks = breaks[1:]
		}

		switch {
		case strings.HasPrefix(text[i:], open):
			if inside {
				if strings.TrimSpace(text[tagStart+len(open):i]) == "" {
					errs = append(errs, TagError{
						Kind:    DuplicateOpenTag,
						Tag:     nameAhead(text[i+len(open):], delims),
						Part:    part,
						Context: snippet(text, tagStart, i+len(open)+contextWidth),
					})
				} else {
					errs = append(errs, unclosed(i))
				}
			}
			inside = true
			tagStart = i
			i += len(open)
		case strings.HasPrefix(text[i:], closing):
			if inside {
				raw := text[tagStart+len(open) : i]
				t, ok := parseTag(raw)
				if !ok {
					errs = append(errs, TagError{Kind: EmptyTag, Part: part, Context: snippet(text, tagStart-contextWidth, i+len(closing))})
				} else {
					t.start, t.end = tagStart, i+len(closing)
					tags = append(tags, t)
				}
				lastName = strings.TrimSpace(raw)
				inside = false
				lastCloseEnd = i + len(closing)
			} else if lastCloseEnd == i {
				errs = append(errs, TagError{
					Kind:    DuplicateCloseTag,
					Tag:     lastName,
					Part:    part,
					Context: snippet(text, i-contextWidth, i+len(closing)),
				})
				lastCloseEnd = i + len(closing)
			} else {
				from := max(lastCloseEnd, lastBreak, i-contextWidth, 0)
				errs = append(errs, TagError{
					Kind:    UnopenedTag,
					Tag:     strings.TrimSpace(text[from:i]),
					Part:    part,
					Context: snippet(text, i-contextWidth, i+len(closing)),
				})
				lastCloseEnd = i + len(closing)
			}
			i += len(closing)
		default:
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}

	if inside {
		errs = append(errs, unclosed(len(text)))
	}
	return tags, errs
}

// openName is the name of a tag that was never closed, as far as it can be told from the text after its opening delimiter.
func openName(text string) string {
	return strings.TrimSpace(truncate(text, contextWidth))
}

func parseTag(raw string) (tag, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return tag{}, false
	}
	t := tag{kind: valueTag}
	switch name[0] {
	case '#':
		t.kind = sectionTag
	case '^':
		t.kind = invertedTag
	case '/':
		t.kind = closeTag
	}
	if t.kind != valueTag {
		name = strings.TrimSpace(name[1:])
		if name == "" && t.kind != closeTag {
			return tag{}, false
		}
	}
	t.name = name
	return t, true
}

// checkSections verifies that section tags are balanced and properly nested.
func checkSections(tags []tag, part string) []TagError {
	var errs []TagError
	var stack []tag
	for _, t := range tags {
		switch t.kind {
		case sectionTag, invertedTag:
			stack = append(stack, t)
		case closeTag:
			if len(stack) == 0 {
				errs = append(errs, TagError{Kind: UnopenedLoop, Tag: t.name, Part: part, Context: "/" + t.name})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if t.name != "" && t.name != top.name {
				errs = append(errs, TagError{Kind: LoopMismatch, Tag: top.name, Part: part, Context: "closed by /" + t.name})
			}
		}
	}
	for _, t := range stack {
		errs = append(errs, TagError{Kind: UnclosedLoop, Tag: t.name, Part: part, Context: "#" + t.name})
	}
	return errs
}

func nameAhead(text string, delims Delimiters) string {
	if idx := strings.Index(text, delims.Close); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimLeft(text, delims.Open)
	return strings.TrimSpace(truncate(text, contextWidth))
}

func snippet(text string, from, to int) string {
	from = max(from, 0)
	to = min(to, len(text))
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	if from >= to {
		return ""
	}
	return text[from:to]
}

func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return snippet(text, 0, n)
}
