package deck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const maxTitleRunes = 100

var slideFilePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Parse extracts ordered slide records from a pptx payload. A pptx file is
// an Office Open XML package: a zip whose slide parts live under
// ppt/slides/ with notes and layouts linked through per-slide rels parts.
func Parse(data []byte) ([]Slide, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	type slideRef struct {
		ordinal int
		name    string
	}
	var refs []slideRef
	for name := range parts {
		m := slideFilePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		refs = append(refs, slideRef{ordinal: n, name: name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ordinal < refs[j].ordinal })

	slides := make([]Slide, 0, len(refs))
	for idx, ref := range refs {
		raw, err := readPart(parts, ref.name)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", idx+1, err)
		}
		body, err := extractSlideBody(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", idx+1, err)
		}

		sl := Slide{
			Number:     idx + 1,
			Title:      body.title,
			Content:    strings.Join(body.texts, "\n\n"),
			ShapeCount: body.shapeCount,
			LayoutName: "Unknown",
		}
		if sl.Title == "" {
			if len(body.texts) > 0 {
				sl.Title = truncateRunes(body.texts[0], maxTitleRunes)
			} else {
				sl.Title = "Untitled Slide"
			}
		}

		rels := readRelationships(parts, relsPartName(ref.name))
		if target := rels.targetFor("notesSlide"); target != "" {
			if raw, err := readPart(parts, target); err == nil {
				sl.Notes = extractNotesText(bytes.NewReader(raw))
			}
		}
		if target := rels.targetFor("slideLayout"); target != "" {
			if raw, err := readPart(parts, target); err == nil {
				if name := extractLayoutName(bytes.NewReader(raw)); name != "" {
					sl.LayoutName = name
				}
			}
		}

		slides = append(slides, sl)
	}

	return slides, nil
}

type slideBody struct {
	title      string
	texts      []string
	shapeCount int
}

// extractSlideBody walks the slide XML collecting per-shape text. Titles
// come from the title/ctrTitle placeholder; shape count covers the direct
// children of the shape tree.
func extractSlideBody(r io.Reader) (slideBody, error) {
	var body slideBody

	dec := xml.NewDecoder(r)
	var stack []string
	var cur strings.Builder
	inShape := false
	isTitle := false
	shapeDepth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return slideBody{}, fmt.Errorf("parse slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if parentIs(stack, "spTree") {
				switch name {
				case "sp", "pic", "graphicFrame", "grpSp", "cxnSp":
					body.shapeCount++
				}
			}
			if name == "sp" && !inShape {
				inShape = true
				isTitle = false
				shapeDepth = len(stack)
				cur.Reset()
			}
			if inShape && name == "ph" {
				for _, a := range t.Attr {
					if a.Name.Local == "type" && (a.Value == "title" || a.Value == "ctrTitle") {
						isTitle = true
					}
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			name := t.Name.Local
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if !inShape {
				continue
			}
			switch name {
			case "p", "br":
				cur.WriteString("\n")
			case "sp":
				if len(stack) != shapeDepth {
					continue
				}
				inShape = false
				text := strings.TrimSpace(cur.String())
				if text == "" {
					continue
				}
				if isTitle && body.title == "" {
					body.title = text
				}
				body.texts = append(body.texts, text)
			}

		case xml.CharData:
			if inShape && parentIs(stack, "t") {
				cur.Write(t)
			}
		}
	}

	return body, nil
}

// extractNotesText returns the text of the notes body placeholder,
// ignoring the slide-image and slide-number placeholders.
func extractNotesText(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var stack []string
	var cur strings.Builder
	inShape := false
	isBody := false
	shapeDepth := 0
	var notes []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "sp" && !inShape {
				inShape = true
				isBody = false
				shapeDepth = len(stack)
				cur.Reset()
			}
			if inShape && name == "ph" {
				for _, a := range t.Attr {
					if a.Name.Local == "type" && a.Value == "body" {
						isBody = true
					}
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			name := t.Name.Local
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if !inShape {
				continue
			}
			switch name {
			case "p", "br":
				cur.WriteString("\n")
			case "sp":
				if len(stack) != shapeDepth {
					continue
				}
				inShape = false
				if !isBody {
					continue
				}
				if text := strings.TrimSpace(cur.String()); text != "" {
					notes = append(notes, text)
				}
			}

		case xml.CharData:
			if inShape && parentIs(stack, "t") {
				cur.Write(t)
			}
		}
	}

	return strings.Join(notes, "\n")
}

// extractLayoutName pulls the name attribute from the layout's cSld element.
func extractLayoutName(r io.Reader) string {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "cSld" {
			for _, a := range start.Attr {
				if a.Name.Local == "name" {
					return strings.TrimSpace(a.Value)
				}
			}
			return ""
		}
	}
}

type relationships struct {
	Entries []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`

	base string
}

// targetFor resolves the part path of the first relationship whose type
// ends with the given suffix, relative to the owning slide part.
func (r relationships) targetFor(typeSuffix string) string {
	for _, e := range r.Entries {
		if !strings.HasSuffix(e.Type, "/"+typeSuffix) {
			continue
		}
		return path.Clean(path.Join(r.base, e.Target))
	}
	return ""
}

func readRelationships(parts map[string]*zip.File, name string) relationships {
	var rels relationships
	rels.base = "ppt/slides"

	raw, err := readPart(parts, name)
	if err != nil {
		return rels
	}
	_ = xml.Unmarshal(raw, &rels)
	return rels
}

func relsPartName(slidePart string) string {
	return path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func parentIs(stack []string, name string) bool {
	return len(stack) > 0 && stack[len(stack)-1] == name
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
