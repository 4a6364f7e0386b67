package docx

import "strings"

type sectionLevel int

const (
	inlineLevel sectionLevel = iota
	paragraphLevel
	rowLevel
)

// expandSections moves every section's open and close tag outwards so the repeated body is a
// well-formed run of XML: whole table rows when the section spans table cells, whole paragraphs
// when it spans paragraphs. A paragraph holding nothing but a section tag is dropped.
func expandSections(segs []segment) []segment {
	done := map[int]bool{}
	for {
		open := -1
		for i, s := range segs {
			if s.kind == tagSegment && isOpening(s.tag) && !done[s.tag.start] {
				open = i
				break
			}
		}
		if open < 0 {
			return segs
		}
		done[segs[open].tag.start] = true
		closeIdx := matchingClose(segs, open)
		if closeIdx < 0 {
			continue
		}

		switch sectionLevelOf(segs[open+1 : closeIdx]) {
		case rowLevel:
			if expanded, ok := expandTo(segs, open, closeIdx, "w:tr"); ok {
				segs = expanded
				continue
			}
			segs = expandParagraphs(segs, open, closeIdx)
		case paragraphLevel:
			segs = expandParagraphs(segs, open, closeIdx)
		}
	}
}

func isOpening(t tag) bool {
	return t.kind == sectionTag || t.kind == invertedTag
}

func matchingClose(segs []segment, open int) int {
	depth := 0
	for i := open + 1; i < len(segs); i++ {
		if segs[i].kind != tagSegment {
			continue
		}
		switch {
		case isOpening(segs[i].tag):
			depth++
		case segs[i].tag.kind == closeTag:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func sectionLevelOf(body []segment) sectionLevel {
	var markup strings.Builder
	for _, s := range body {
		if s.kind == markupSegment {
			markup.WriteString(s.text)
		}
	}
	switch m := markup.String(); {
	case strings.Contains(m, "</w:tc>"):
		return rowLevel
	case strings.Contains(m, "</w:p>"):
		return paragraphLevel
	default:
		return inlineLevel
	}
}

// expandTo moves the section tags to the start of the element enclosing the open tag and the end of
// the element enclosing the close tag.
func expandTo(segs []segment, open, closeIdx int, element string) ([]segment, bool) {
	startSeg, startOff, ok := findOpenBefore(segs, open, element)
	if !ok {
		return nil, false
	}
	endSeg, endOff, ok := findCloseAfter(segs, closeIdx, element)
	if !ok {
		return nil, false
	}
	segs = moveTag(segs, closeIdx, endSeg, endOff)
	segs = moveTag(segs, open, startSeg, startOff)
	return segs, true
}

func expandParagraphs(segs []segment, open, closeIdx int) []segment {
	if start, end, ok := soleParagraph(segs, closeIdx); ok {
		segs = collapse(segs, closeIdx, start, end)
	} else if endSeg, endOff, ok := findCloseAfter(segs, closeIdx, "w:p"); ok {
		segs = moveTag(segs, closeIdx, endSeg, endOff)
	}

	if start, end, ok := soleParagraph(segs, open); ok {
		return collapse(segs, open, start, end)
	}
	if startSeg, startOff, ok := findOpenBefore(segs, open, "w:p"); ok {
		return moveTag(segs, open, startSeg, startOff)
	}
	return segs
}

type position struct {
	seg, off int
}

// soleParagraph reports the bounds of the paragraph around segs[i] when it holds no other tag or text.
func soleParagraph(segs []segment, i int) (position, position, bool) {
	startSeg, startOff, ok := findOpenBefore(segs, i, "w:p")
	if !ok {
		return position{}, position{}, false
	}
	endSeg, endOff, ok := findCloseAfter(segs, i, "w:p")
	if !ok {
		return position{}, position{}, false
	}
	for k := startSeg + 1; k < endSeg; k++ {
		if k == i {
			continue
		}
		switch segs[k].kind {
		case tagSegment:
			return position{}, position{}, false
		case textSegment:
			if strings.TrimSpace(segs[k].text) != "" {
				return position{}, position{}, false
			}
		}
	}
	return position{startSeg, startOff}, position{endSeg, endOff}, true
}

// findOpenBefore searches backwards from segs[i] for the opening tag of element. It refuses to cross
// another section tag so nesting is preserved.
func findOpenBefore(segs []segment, i int, element string) (int, int, bool) {
	for k := i - 1; k >= 0; k-- {
		switch segs[k].kind {
		case tagSegment:
			if segs[k].tag.kind != valueTag {
				return 0, 0, false
			}
		case markupSegment:
			if idx := lastIndexElement(segs[k].text, element); idx >= 0 {
				return k, idx, true
			}
		}
	}
	return 0, 0, false
}

func findCloseAfter(segs []segment, i int, element string) (int, int, bool) {
	closing := "</" + element + ">"
	for k := i + 1; k < len(segs); k++ {
		switch segs[k].kind {
		case tagSegment:
			if segs[k].tag.kind != valueTag {
				return 0, 0, false
			}
		case markupSegment:
			if idx := strings.Index(segs[k].text, closing); idx >= 0 {
				return k, idx + len(closing), true
			}
		}
	}
	return 0, 0, false
}

// moveTag relocates segs[from] to offset off inside markup segment segs[to].
func moveTag(segs []segment, from, to, off int) []segment {
	moved := segs[from]
	target := segs[to]
	split := []segment{
		{kind: markupSegment, text: target.text[:off]},
		moved,
		{kind: markupSegment, text: target.text[off:]},
	}

	out := make([]segment, 0, len(segs)+2)
	for k, s := range segs {
		switch k {
		case from:
		case to:
			out = append(out, split...)
		default:
			out = append(out, s)
		}
	}
	return out
}

// collapse replaces the span from start to end, which contains segs[i], by segs[i] alone.
func collapse(segs []segment, i int, start, end position) []segment {
	out := make([]segment, 0, len(segs))
	out = append(out, segs[:start.seg]...)
	out = append(out, segment{kind: markupSegment, text: segs[start.seg].text[:start.off]})
	out = append(out, segs[i])
	out = append(out, segment{kind: markupSegment, text: segs[end.seg].text[end.off:]})
	out = append(out, segs[end.seg+1:]...)
	return out
}
