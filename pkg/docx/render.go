package docx

import (
	"fmt"
	"reflect"
	"strings"
)

type node struct {
	segment  segment
	children []node
}

// buildTree nests the segments between a section tag and its close tag under the section.
func buildTree(segs []segment) []node {
	root := []node{}
	stack := []*[]node{&root}
	var open []node
	for _, s := range segs {
		current := stack[len(stack)-1]
		if s.kind != tagSegment {
			*current = append(*current, node{segment: s})
			continue
		}
		switch {
		case isOpening(s.tag):
			open = append(open, node{segment: s})
			children := []node{}
			stack = append(stack, &children)
		case s.tag.kind == closeTag:
			children := *stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			section := open[len(open)-1]
			open = open[:len(open)-1]
			section.children = children
			parent := stack[len(stack)-1]
			*parent = append(*parent, section)
		default:
			*current = append(*current, node{segment: s})
		}
	}
	return root
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

const lineBreak = `</w:t><w:br/>` + preservedTextOpen

type renderer struct {
	opts Options
	part string
}

func (r *renderer) render(b *strings.Builder, nodes []node, scopes []any) {
	for _, n := range nodes {
		s := n.segment
		switch s.kind {
		case markupSegment:
			b.WriteString(s.text)
		case textSegment:
			b.WriteString(xmlEscaper.Replace(s.text))
		case tagSegment:
			r.renderTag(b, n, scopes)
		}
	}
}

func (r *renderer) renderTag(b *strings.Builder, n node, scopes []any) {
	t := n.segment.tag
	value, found := lookup(scopes, t.name)
	switch t.kind {
	case valueTag:
		if !found || value == nil {
			r.missing(t.name)
			return
		}
		r.writeValue(b, value)
	case sectionTag:
		if !found {
			r.missing(t.name)
			return
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				r.render(b, n.children, append(scopes, rv.Index(i).Interface()))
			}
			return
		}
		if truthy(value) {
			r.render(b, n.children, append(scopes, value))
		}
	case invertedTag:
		if !found || !truthy(value) {
			r.render(b, n.children, scopes)
		}
	}
}

func (r *renderer) writeValue(b *strings.Builder, value any) {
	text := fmt.Sprint(value)
	if !r.opts.LineBreaks {
		b.WriteString(xmlEscaper.Replace(text))
		return
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString(lineBreak)
		}
		b.WriteString(xmlEscaper.Replace(line))
	}
}

func (r *renderer) missing(name string) {
	if r.opts.OnMissing != nil {
		r.opts.OnMissing(r.part, name)
	}
}

// lookup resolves a dotted name against the innermost scope that defines its first segment.
// The name "." is the innermost scope itself.
func lookup(scopes []any, name string) (any, bool) {
	if name == "." {
		if len(scopes) == 0 {
			return nil, false
		}
		return scopes[len(scopes)-1], true
	}
	keys := strings.Split(name, ".")
	for i := len(scopes) - 1; i >= 0; i-- {
		value, ok := field(scopes[i], keys[0])
		if !ok {
			continue
		}
		for _, key := range keys[1:] {
			if value, ok = field(value, key); !ok {
				return nil, false
			}
		}
		return value, true
	}
	return nil, false
}

func field(scope any, key string) (any, bool) {
	switch m := scope.(type) {
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	}
	return nil, false
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
