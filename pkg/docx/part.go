package docx

import (
	"html"
	"strings"
)

type segmentKind int

const (
	markupSegment segmentKind = iota
	textSegment
	tagSegment
)

// segment is a piece of a document part. Markup is kept verbatim, text is unescaped character data
// of a <w:t> element, and tags are placeholders that used to sit inside that character data.
type segment struct {
	kind segmentKind
	text string
	tag  tag
}

type textNode struct {
	// open is the span of the opening <w:t ...> element, inner the span of its character data
	openStart, innerStart, innerEnd int
	text                            string
}

const preservedTextOpen = `<w:t xml:space="preserve">`

// findTextNodes locates every <w:t> element with content in a WordprocessingML part.
func findTextNodes(xml string) []textNode {
	var nodes []textNode
	for pos := 0; pos < len(xml); {
		idx := indexElement(xml[pos:], "w:t")
		if idx < 0 {
			break
		}
		openStart := pos + idx
		openEnd := strings.IndexByte(xml[openStart:], '>')
		if openEnd < 0 {
			break
		}
		openEnd += openStart
		if xml[openEnd-1] == '/' {
			pos = openEnd + 1
			continue
		}
		innerStart := openEnd + 1
		closeIdx := strings.Index(xml[innerStart:], "</w:t>")
		if closeIdx < 0 {
			break
		}
		innerEnd := innerStart + closeIdx
		nodes = append(nodes, textNode{
			openStart:  openStart,
			innerStart: innerStart,
			innerEnd:   innerEnd,
			text:       html.UnescapeString(xml[innerStart:innerEnd]),
		})
		pos = innerEnd + len("</w:t>")
	}
	return nodes
}

// indexElement finds the opening tag of element name, skipping longer names sharing the prefix
// such as w:tbl for w:t.
func indexElement(xml, name string) int {
	prefix := "<" + name
	for offset := 0; ; {
		idx := strings.Index(xml[offset:], prefix)
		if idx < 0 {
			return -1
		}
		idx += offset
		next := idx + len(prefix)
		if next < len(xml) && (xml[next] == '>' || xml[next] == ' ' || xml[next] == '/') {
			return idx
		}
		offset = next
	}
}

func lastIndexElement(xml, name string) int {
	prefix := "<" + name
	for end := len(xml); ; {
		idx := strings.LastIndex(xml[:end], prefix)
		if idx < 0 {
			return -1
		}
		next := idx + len(prefix)
		if next < len(xml) && (xml[next] == '>' || xml[next] == ' ') {
			return idx
		}
		end = idx
	}
}

// parsedPart is a document part split into segments with every tag moved into a single text run.
type parsedPart struct {
	name     string
	segments []segment
	tags     []tag
}

// parsePart lexes the text of a part. Tags split over several runs, as Word often produces
// after spell checking or formatting, are rejoined into the run where they start.
func parsePart(name, xml string, delims Delimiters) (parsedPart, []TagError) {
	nodes := findTextNodes(xml)

	var full strings.Builder
	var breaks []int
	owner := make([]int, 0, len(xml)/4)
	markupStart := 0
	for i, n := range nodes {
		if i > 0 && strings.Contains(xml[markupStart:n.openStart], "</w:p>") {
			breaks = append(breaks, full.Len())
		}
		markupStart = n.innerEnd
		full.WriteString(n.text)
		for range len(n.text) {
			owner = append(owner, i)
		}
	}
	text := full.String()

	tags, errs := lex(text, delims, name, breaks)
	errs = append(errs, checkSections(tags, name)...)
	if len(errs) > 0 {
		return parsedPart{}, errs
	}

	for _, t := range tags {
		for k := t.start; k < t.end; k++ {
			owner[k] = owner[t.start]
		}
	}

	p := parsedPart{name: name, tags: tags}
	cursor := 0
	tagIdx := 0
	k := 0
	for i, n := range nodes {
		p.appendMarkup(xml[cursor:n.openStart])
		p.appendMarkup(preservedTextOpen)

		var buf strings.Builder
		for k < len(text) && owner[k] == i {
			if tagIdx < len(tags) && tags[tagIdx].start == k {
				if buf.Len() > 0 {
					p.segments = append(p.segments, segment{kind: textSegment, text: buf.String()})
					buf.Reset()
				}
				p.segments = append(p.segments, segment{kind: tagSegment, tag: tags[tagIdx]})
				k = tags[tagIdx].end
				tagIdx++
				continue
			}
			buf.WriteByte(text[k])
			k++
		}
		if buf.Len() > 0 {
			p.segments = append(p.segments, segment{kind: textSegment, text: buf.String()})
		}
		cursor = n.innerEnd
	}
	p.appendMarkup(xml[cursor:])
	return p, nil
}

func (p *parsedPart) appendMarkup(markup string) {
	if markup == "" {
		return
	}
	if last := len(p.segments) - 1; last >= 0 && p.segments[last].kind == markupSegment {
		p.segments[last].text += markup
		return
	}
	p.segments = append(p.segments, segment{kind: markupSegment, text: markup})
}
